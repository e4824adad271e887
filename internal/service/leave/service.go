package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/audit"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

// ScheduleWriter is the slice of the schedule workflow the approval path
// needs: marking each approved day as leave inside the ambient transaction.
type ScheduleWriter interface {
	UpsertOrClear(ctx context.Context, sectorID, employeeID int64, date time.Time, value schedule.ShiftValue, origin schedule.Origin) (schedule.Outcome, error)
}

type Service struct {
	requests   leave.RequestRepository
	balances   leave.BalanceRepository
	users      user.Repository
	schedules  ScheduleWriter
	tx         database.TxRunner
	dispatcher notification.Dispatcher
	recorder   audit.Recorder
	logger     *slog.Logger
}

func NewService(
	requests leave.RequestRepository,
	balances leave.BalanceRepository,
	users user.Repository,
	schedules ScheduleWriter,
	tx database.TxRunner,
	dispatcher notification.Dispatcher,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		requests:   requests,
		balances:   balances,
		users:      users,
		schedules:  schedules,
		tx:         tx,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
	}
}

// Submit files a pending leave request. Employees may only file for
// themselves; managers and admins may file on an employee's behalf.
// Managers of the employee's sector and all admins are notified.
func (s *Service) Submit(ctx context.Context, actor auth.Actor, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}
	if actor.Role == user.RoleEmployee {
		if actor.EmployeeID == nil || *actor.EmployeeID != req.EmployeeID {
			return leave.RequestResponse{}, auth.ErrForbidden
		}
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.requests.Create(ctx, leave.Request{
		EmployeeID: req.EmployeeID,
		StartDate:  schedule.Day(start),
		EndDate:    schedule.Day(end),
		Days:       req.Days,
		Status:     leave.RequestStatusPending,
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	// Re-read for the joined employee name and sector.
	created, err = s.requests.GetByID(ctx, created.ID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to load created leave request: %w", err)
	}

	s.notifyDeciders(ctx, created)
	s.recorder.Record(ctx, &actor.UserID, "leave.submitted", map[string]interface{}{
		"request_id":  created.ID,
		"employee_id": created.EmployeeID,
		"days":        created.Days,
	})

	return leave.ToRequestResponse(created), nil
}

func (s *Service) notifyDeciders(ctx context.Context, request leave.Request) {
	name := "zaposlenik"
	if request.EmployeeName != nil {
		name = *request.EmployeeName
	}
	message := fmt.Sprintf("Novi zahtjev za godišnji: %s (%s - %s)",
		name, request.StartDate.Format("02.01.2006."), request.EndDate.Format("02.01.2006."))
	link := "requests"

	if request.SectorID != nil {
		err := s.dispatcher.Notify(ctx, notification.KindLeaveRequested, message,
			notification.TargetRoleSector(user.RoleManager, *request.SectorID), &link)
		if err != nil {
			s.logger.Warn("failed to notify managers about leave request",
				slog.Int64("request_id", request.ID), slog.Any("error", err))
		}
	}
	err := s.dispatcher.Notify(ctx, notification.KindLeaveRequested, message,
		notification.TargetRole(user.RoleAdmin), &link)
	if err != nil {
		s.logger.Warn("failed to notify admins about leave request",
			slog.Int64("request_id", request.ID), slog.Any("error", err))
	}
}

// Approve settles a pending request in one transaction: the status flips to
// approved, the employee's yearly balance is charged, and every day of the
// range becomes a leave entry on the schedule. A request that is no longer
// pending fails with ErrRequestAlreadyProcessed and changes nothing, so a
// double click or a concurrent decision cannot double-charge the balance.
func (s *Service) Approve(ctx context.Context, actor auth.Actor, requestID int64) (leave.RequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !actor.CanDecideFor(request.SectorID) {
		return leave.RequestResponse{}, auth.ErrForbidden
	}
	if request.Status != leave.RequestStatusPending {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.requests.UpdateStatus(ctx, requestID, leave.RequestStatusPending, leave.RequestStatusApproved, actor.UserID, now)
		if err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}
		if !ok {
			return leave.ErrRequestAlreadyProcessed
		}

		// The charge always lands on the current year's ledger row, the
		// same row Balance serves by default.
		err = s.balances.AddUsed(ctx, request.EmployeeID, now.Year(), request.Days)
		if err != nil {
			return err
		}

		if request.SectorID == nil {
			s.logger.Warn("approved leave for employee without a sector, skipping schedule entries",
				slog.Int64("request_id", requestID))
			return nil
		}
		for d := request.StartDate; !d.After(request.EndDate); d = d.AddDate(0, 0, 1) {
			_, err := s.schedules.UpsertOrClear(ctx, *request.SectorID, request.EmployeeID, d, schedule.OnLeave(), schedule.OriginManual)
			if err != nil {
				return fmt.Errorf("failed to write leave day %s: %w", d.Format("2006-01-02"), err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.notifyEmployee(ctx, request, notification.KindLeaveApproved, "Vaš zahtjev za godišnji je odobren.", "schedule")
	s.recorder.Record(ctx, &actor.UserID, "leave.approved", map[string]interface{}{
		"request_id":  requestID,
		"employee_id": request.EmployeeID,
		"days":        request.Days,
	})

	request.Status = leave.RequestStatusApproved
	request.DecidedBy = &actor.UserID
	request.DecidedAt = &now
	return leave.ToRequestResponse(request), nil
}

// Reject closes a pending request without touching the balance or the
// schedule. Like Approve it refuses requests that were already decided.
func (s *Service) Reject(ctx context.Context, actor auth.Actor, requestID int64) (leave.RequestResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if !actor.CanDecideFor(request.SectorID) {
		return leave.RequestResponse{}, auth.ErrForbidden
	}
	if request.Status != leave.RequestStatusPending {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	ok, err := s.requests.UpdateStatus(ctx, requestID, leave.RequestStatusPending, leave.RequestStatusRejected, actor.UserID, now)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update request status: %w", err)
	}
	if !ok {
		return leave.RequestResponse{}, leave.ErrRequestAlreadyProcessed
	}

	s.notifyEmployee(ctx, request, notification.KindLeaveRejected, "Vaš zahtjev za godišnji je odbijen.", "requests")
	s.recorder.Record(ctx, &actor.UserID, "leave.rejected", map[string]interface{}{
		"request_id":  requestID,
		"employee_id": request.EmployeeID,
	})

	request.Status = leave.RequestStatusRejected
	request.DecidedBy = &actor.UserID
	request.DecidedAt = &now
	return leave.ToRequestResponse(request), nil
}

// notifyEmployee targets the employee's user account. Employees without an
// account are silently skipped; the decision stands either way.
func (s *Service) notifyEmployee(ctx context.Context, request leave.Request, kind notification.Kind, message, link string) {
	account, err := s.users.GetByEmployeeID(ctx, request.EmployeeID)
	if err != nil {
		if err != user.ErrUserNotFound {
			s.logger.Warn("failed to resolve employee user account",
				slog.Int64("employee_id", request.EmployeeID), slog.Any("error", err))
		}
		return
	}
	err = s.dispatcher.Notify(ctx, kind, message, notification.TargetUser(account.ID), &link)
	if err != nil {
		s.logger.Warn("failed to notify employee about leave decision",
			slog.Int64("request_id", request.ID), slog.Any("error", err))
	}
}

// List returns requests visible to the actor: admins see everything,
// managers their own sector, employees their own requests.
func (s *Service) List(ctx context.Context, actor auth.Actor, status *leave.RequestStatus) ([]leave.RequestResponse, error) {
	var requests []leave.Request
	var err error

	switch actor.Role {
	case user.RoleAdmin:
		requests, err = s.requests.List(ctx, status, nil)
	case user.RoleManager:
		if actor.SectorID == nil {
			return []leave.RequestResponse{}, nil
		}
		requests, err = s.requests.List(ctx, status, actor.SectorID)
	default:
		if actor.EmployeeID == nil {
			return []leave.RequestResponse{}, nil
		}
		requests, err = s.requests.ListByEmployee(ctx, *actor.EmployeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		if actor.Role == user.RoleEmployee && status != nil && r.Status != *status {
			continue
		}
		responses = append(responses, leave.ToRequestResponse(r))
	}
	return responses, nil
}

// Balance returns the employee's entitlement for the given year.
func (s *Service) Balance(ctx context.Context, employeeID int64, year int) (leave.BalanceResponse, error) {
	balance, err := s.balances.GetByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(balance), nil
}
