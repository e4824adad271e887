package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	leaveservice "github.com/velamar-hotels/hr-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.Service
}

func NewLeaveHandler(leaveService *leaveservice.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.Submit(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", result)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var status *leave.RequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := leave.RequestStatus(raw)
		switch s {
		case leave.RequestStatusPending, leave.RequestStatusApproved, leave.RequestStatusRejected:
			status = &s
		default:
			response.BadRequest(w, "Invalid status filter", nil)
			return
		}
	}

	requests, err := h.leaveService.List(r.Context(), actor, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	id, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.leaveService.Approve(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	id, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.leaveService.Reject(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// Balance implements LeaveHandler.
func (h *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	year := time.Now().Year()
	if y := queryInt64(r, "year"); y != nil {
		year = int(*y)
	}

	balance, err := h.leaveService.Balance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}
