package http

import (
	"encoding/json"
	"net/http"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	authservice "github.com/velamar-hotels/hr-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService *authservice.Service
}

func NewAuthHandler(authService *authservice.Service) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Me implements AuthHandler. It echoes the identity decoded from the token.
func (h *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	response.Success(w, map[string]interface{}{
		"user_id":     actor.UserID,
		"role":        actor.Role,
		"employee_id": actor.EmployeeID,
		"sector_id":   actor.SectorID,
	})
}
