package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/velamar-hotels/hr-backend-go/internal/config"
	appHTTP "github.com/velamar-hotels/hr-backend-go/internal/handler/http"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/jwt"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/sse"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/textgen"
	"github.com/velamar-hotels/hr-backend-go/internal/repository/postgresql"
	aidraftService "github.com/velamar-hotels/hr-backend-go/internal/service/aidraft"
	auditService "github.com/velamar-hotels/hr-backend-go/internal/service/audit"
	authService "github.com/velamar-hotels/hr-backend-go/internal/service/auth"
	directoryService "github.com/velamar-hotels/hr-backend-go/internal/service/directory"
	leaveService "github.com/velamar-hotels/hr-backend-go/internal/service/leave"
	notificationService "github.com/velamar-hotels/hr-backend-go/internal/service/notification"
	scheduleService "github.com/velamar-hotels/hr-backend-go/internal/service/schedule"
	worktimeService "github.com/velamar-hotels/hr-backend-go/internal/service/worktime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config: ", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	sectorRepo := postgresql.NewSectorRepository(db)
	shiftTemplateRepo := postgresql.NewShiftTemplateRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	sickLeaveRepo := postgresql.NewSickLeaveRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	txRunner := postgresql.NewTxRunner(db)

	// Infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	var generator textgen.Generator = textgen.Disabled{}
	if cfg.AI.APIKey != "" {
		gemini, err := textgen.NewGemini(context.Background(), cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
		if err != nil {
			log.Fatal("Error initializing AI client: ", err)
		}
		generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, schedule draft generation disabled")
	}

	// Services
	recorder := auditService.NewRecorder(auditRepo, logger)
	dispatcher := notificationService.NewService(notificationRepo, userRepo, hub, logger)
	schedules := scheduleService.NewService(scheduleRepo, txRunner, dispatcher, recorder, logger)
	leaves := leaveService.NewService(leaveRequestRepo, leaveBalanceRepo, userRepo, schedules, txRunner, dispatcher, recorder, logger)
	directories := directoryService.NewService(employeeRepo, sectorRepo, shiftTemplateRepo, contractRepo)
	worktimes := worktimeService.NewService(sickLeaveRepo, overtimeRepo, userRepo, dispatcher, recorder, logger)
	auths := authService.NewService(userRepo, employeeRepo, jwtService, recorder, logger)
	drafts := aidraftService.NewService(generator, employeeRepo, sectorRepo, shiftTemplateRepo, eventRepo, leaveRequestRepo, sickLeaveRepo, schedules, logger)

	router := appHTTP.NewRouter(jwtService, logger, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(auths),
		Directory:    appHTTP.NewDirectoryHandler(directories),
		Schedule:     appHTTP.NewScheduleHandler(schedules),
		Leave:        appHTTP.NewLeaveHandler(leaves),
		AIDraft:      appHTTP.NewAIDraftHandler(drafts),
		Notification: appHTTP.NewNotificationHandler(dispatcher, hub),
		Worktime:     appHTTP.NewWorktimeHandler(worktimes),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("starting server", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
