package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/worktime"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	worktimeservice "github.com/velamar-hotels/hr-backend-go/internal/service/worktime"
)

type WorktimeHandler interface {
	ReportSickLeave(w http.ResponseWriter, r *http.Request)
	ListSectorSickLeaves(w http.ResponseWriter, r *http.Request)
	SubmitOvertime(w http.ResponseWriter, r *http.Request)
	ApproveOvertime(w http.ResponseWriter, r *http.Request)
	ListOvertime(w http.ResponseWriter, r *http.Request)
}

type WorktimeHandlerImpl struct {
	worktimeService *worktimeservice.Service
}

func NewWorktimeHandler(worktimeService *worktimeservice.Service) WorktimeHandler {
	return &WorktimeHandlerImpl{worktimeService: worktimeService}
}

// ReportSickLeave implements WorktimeHandler.
func (h *WorktimeHandlerImpl) ReportSickLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req worktime.CreateSickLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.worktimeService.ReportSickLeave(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Sick leave reported", created)
}

// ListSectorSickLeaves implements WorktimeHandler.
func (h *WorktimeHandlerImpl) ListSectorSickLeaves(w http.ResponseWriter, r *http.Request) {
	sectorID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Sector ID is required", nil)
		return
	}

	now := time.Now()
	from := queryDate(r, "from", now.AddDate(0, -1, 0))
	to := queryDate(r, "to", now.AddDate(0, 1, 0))

	leaves, err := h.worktimeService.SectorSickLeaves(r.Context(), sectorID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaves)
}

// SubmitOvertime implements WorktimeHandler.
func (h *WorktimeHandlerImpl) SubmitOvertime(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req worktime.CreateOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.worktimeService.SubmitOvertime(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Overtime submitted", created)
}

// ApproveOvertime implements WorktimeHandler.
func (h *WorktimeHandlerImpl) ApproveOvertime(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	id, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Overtime ID is required", nil)
		return
	}

	entry, err := h.worktimeService.ApproveOvertime(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Overtime approved", entry)
}

// ListOvertime implements WorktimeHandler.
func (h *WorktimeHandlerImpl) ListOvertime(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	entries, err := h.worktimeService.ListOvertime(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}
