package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/audit"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/jwt"
)

type Service struct {
	users     user.Repository
	employees directory.EmployeeRepository
	jwt       jwt.Service
	recorder  audit.Recorder
	logger    *slog.Logger
}

func NewService(
	users user.Repository,
	employees directory.EmployeeRepository,
	jwtService jwt.Service,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:     users,
		employees: employees,
		jwt:       jwtService,
		recorder:  recorder,
		logger:    logger,
	}
}

// Login checks the credentials and issues an access token. The token
// carries the linked employee's sector so manager scoping works without a
// lookup on every request; unknown usernames and bad passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	account, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	actor := auth.Actor{UserID: account.ID, Role: account.Role, EmployeeID: account.EmployeeID}
	if account.EmployeeID != nil {
		employee, err := s.employees.GetByID(ctx, *account.EmployeeID)
		if err != nil {
			s.logger.Warn("login for user with dangling employee link",
				slog.Int64("user_id", account.ID), slog.Any("error", err))
		} else {
			actor.SectorID = employee.SectorID
		}
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(actor, account.Username)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.recorder.Record(ctx, &account.ID, "auth.login", map[string]interface{}{
		"username": account.Username,
	})

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		UserID:      account.ID,
		Username:    account.Username,
		Role:        account.Role,
		EmployeeID:  actor.EmployeeID,
		SectorID:    actor.SectorID,
	}, nil
}
