package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/middleware"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Directory    DirectoryHandler
	Schedule     ScheduleHandler
	Leave        LeaveHandler
	AIDraft      AIDraftHandler
	Notification NotificationHandler
	Worktime     WorktimeHandler
}

func NewRouter(jwtService jwt.Service, logger *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/sectors", func(r chi.Router) {
				r.Get("/", h.Directory.ListSectors)
				r.Get("/{id}/employees", h.Directory.ListSectorEmployees)
				r.Get("/{id}/shift-templates", h.Directory.ListSectorShiftTemplates)
				r.Get("/{id}/schedule", h.Schedule.WeekGrid)
				r.Get("/{id}/sick-leaves", h.Worktime.ListSectorSickLeaves)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Directory.GetEmployee)
				r.Get("/{id}/schedule", h.Schedule.EmployeeSchedule)
				r.Get("/{id}/leave-balance", h.Leave.Balance)
				r.Get("/{id}/contract", h.Directory.GetEmployeeContract)
			})

			r.Route("/schedule", func(r chi.Router) {
				r.With(middleware.RequireApprover).Post("/grid", h.Schedule.SaveGrid)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Submit)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/ai/schedule", func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Post("/draft", h.AIDraft.Generate)
				r.Post("/import", h.AIDraft.Import)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.Inbox)
				r.Get("/stream", h.Notification.Stream)
				r.Post("/read", h.Notification.MarkRead)
				r.Delete("/read", h.Notification.ClearRead)
			})

			r.Route("/sick-leaves", func(r chi.Router) {
				r.Post("/", h.Worktime.ReportSickLeave)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Get("/", h.Worktime.ListOvertime)
				r.Post("/", h.Worktime.SubmitOvertime)
				r.With(middleware.RequireApprover).Post("/{id}/approve", h.Worktime.ApproveOvertime)
			})
		})
	})
	return r
}
