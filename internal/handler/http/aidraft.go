package http

import (
	"encoding/json"
	"net/http"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	"github.com/velamar-hotels/hr-backend-go/internal/service/aidraft"
)

type AIDraftHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type AIDraftHandlerImpl struct {
	draftService *aidraft.Service
}

func NewAIDraftHandler(draftService *aidraft.Service) AIDraftHandler {
	return &AIDraftHandlerImpl{draftService: draftService}
}

// Generate implements AIDraftHandler.
func (h *AIDraftHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req aidraft.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !actor.CanDecideFor(&req.SectorID) {
		response.HandleError(w, auth.ErrForbidden)
		return
	}

	result, err := h.draftService.GenerateDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Import implements AIDraftHandler.
func (h *AIDraftHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req aidraft.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !actor.CanDecideFor(&req.SectorID) {
		response.HandleError(w, auth.ErrForbidden)
		return
	}

	result, err := h.draftService.ImportDraft(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
