package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	scheduleservice "github.com/velamar-hotels/hr-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	SaveGrid(w http.ResponseWriter, r *http.Request)
	WeekGrid(w http.ResponseWriter, r *http.Request)
	EmployeeSchedule(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService *scheduleservice.Service
}

func NewScheduleHandler(scheduleService *scheduleservice.Service) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// SaveGrid implements ScheduleHandler.
func (h *ScheduleHandlerImpl) SaveGrid(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req schedule.GridSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if !actor.CanDecideFor(&req.SectorID) {
		response.HandleError(w, auth.ErrForbidden)
		return
	}

	result, err := h.scheduleService.SaveGrid(r.Context(), actor.UserID, req, schedule.OriginManual)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// WeekGrid implements ScheduleHandler.
func (h *ScheduleHandlerImpl) WeekGrid(w http.ResponseWriter, r *http.Request) {
	sectorID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Sector ID is required", nil)
		return
	}
	weekStart := queryDate(r, "week_start", time.Now())

	entries, err := h.scheduleService.WeekGrid(r.Context(), sectorID, weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}

// EmployeeSchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) EmployeeSchedule(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := urlID(r, "id")
	if !ok {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	now := time.Now()
	from := queryDate(r, "from", now)
	to := queryDate(r, "to", now.AddDate(0, 0, 6))

	entries, err := h.scheduleService.EmployeeSchedule(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, entries)
}
