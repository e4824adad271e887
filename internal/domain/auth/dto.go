package auth

import (
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   int64     `json:"expires_at"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Role        user.Role `json:"role"`
	EmployeeID  *int64    `json:"employee_id,omitempty"`
	SectorID    *int64    `json:"sector_id,omitempty"`
}
