package worktime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/audit"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/worktime"
)

type Service struct {
	sickLeaves worktime.SickLeaveRepository
	overtime   worktime.OvertimeRepository
	users      user.Repository
	dispatcher notification.Dispatcher
	recorder   audit.Recorder
	logger     *slog.Logger
}

func NewService(
	sickLeaves worktime.SickLeaveRepository,
	overtime worktime.OvertimeRepository,
	users user.Repository,
	dispatcher notification.Dispatcher,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		sickLeaves: sickLeaves,
		overtime:   overtime,
		users:      users,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
	}
}

// ReportSickLeave records a date-ranged sick leave. Employees report for
// themselves; managers and admins for anyone.
func (s *Service) ReportSickLeave(ctx context.Context, actor auth.Actor, req worktime.CreateSickLeaveRequest) (worktime.SickLeave, error) {
	if err := req.Validate(); err != nil {
		return worktime.SickLeave{}, err
	}
	if actor.Role == user.RoleEmployee {
		if actor.EmployeeID == nil || *actor.EmployeeID != req.EmployeeID {
			return worktime.SickLeave{}, auth.ErrForbidden
		}
	}

	start, _ := time.Parse("2006-01-02", req.Start)
	end, _ := time.Parse("2006-01-02", req.End)

	created, err := s.sickLeaves.Create(ctx, worktime.SickLeave{
		EmployeeID: req.EmployeeID,
		Start:      start,
		End:        end,
		Status:     worktime.SickLeaveStatusSubmitted,
	})
	if err != nil {
		return worktime.SickLeave{}, fmt.Errorf("failed to create sick leave: %w", err)
	}

	s.recorder.Record(ctx, &actor.UserID, "worktime.sick_leave_reported", map[string]interface{}{
		"sick_leave_id": created.ID,
		"employee_id":   created.EmployeeID,
	})
	return created, nil
}

// SubmitOvertime files an overtime entry awaiting approval.
func (s *Service) SubmitOvertime(ctx context.Context, actor auth.Actor, req worktime.CreateOvertimeRequest) (worktime.Overtime, error) {
	if err := req.Validate(); err != nil {
		return worktime.Overtime{}, err
	}
	if actor.Role == user.RoleEmployee {
		if actor.EmployeeID == nil || *actor.EmployeeID != req.EmployeeID {
			return worktime.Overtime{}, auth.ErrForbidden
		}
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.overtime.Create(ctx, worktime.Overtime{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Hours:      req.Hours,
		Reason:     req.Reason,
	})
	if err != nil {
		return worktime.Overtime{}, fmt.Errorf("failed to create overtime entry: %w", err)
	}

	s.recorder.Record(ctx, &actor.UserID, "worktime.overtime_submitted", map[string]interface{}{
		"overtime_id": created.ID,
		"employee_id": created.EmployeeID,
		"hours":       created.Hours,
	})
	return created, nil
}

// ApproveOvertime marks an entry approved. A second decision on the same
// entry fails with ErrOvertimeAlreadyApproved and changes nothing.
func (s *Service) ApproveOvertime(ctx context.Context, actor auth.Actor, id int64) (worktime.Overtime, error) {
	entry, err := s.overtime.GetByID(ctx, id)
	if err != nil {
		return worktime.Overtime{}, err
	}
	if !actor.CanDecideFor(entry.SectorID) {
		return worktime.Overtime{}, auth.ErrForbidden
	}
	if entry.Approved {
		return worktime.Overtime{}, worktime.ErrOvertimeAlreadyApproved
	}

	ok, err := s.overtime.Approve(ctx, id, actor.UserID)
	if err != nil {
		return worktime.Overtime{}, fmt.Errorf("failed to approve overtime: %w", err)
	}
	if !ok {
		return worktime.Overtime{}, worktime.ErrOvertimeAlreadyApproved
	}

	s.notifyDecided(ctx, entry)
	s.recorder.Record(ctx, &actor.UserID, "worktime.overtime_approved", map[string]interface{}{
		"overtime_id": id,
		"employee_id": entry.EmployeeID,
	})

	entry.Approved = true
	entry.ApprovedBy = &actor.UserID
	return entry, nil
}

func (s *Service) notifyDecided(ctx context.Context, entry worktime.Overtime) {
	account, err := s.users.GetByEmployeeID(ctx, entry.EmployeeID)
	if err != nil {
		if err != user.ErrUserNotFound {
			s.logger.Warn("failed to resolve employee user account",
				slog.Int64("employee_id", entry.EmployeeID), slog.Any("error", err))
		}
		return
	}

	link := "overtime"
	message := fmt.Sprintf("Vaši prekovremeni sati za %s su odobreni.", entry.Date.Format("02.01.2006."))
	err = s.dispatcher.Notify(ctx, notification.KindOvertimeDecided, message, notification.TargetUser(account.ID), &link)
	if err != nil {
		s.logger.Warn("failed to notify employee about overtime decision",
			slog.Int64("overtime_id", entry.ID), slog.Any("error", err))
	}
}

// ListOvertime returns entries the actor may see: admins everything,
// managers their sector, employees their own.
func (s *Service) ListOvertime(ctx context.Context, actor auth.Actor) ([]worktime.Overtime, error) {
	switch actor.Role {
	case user.RoleAdmin:
		return s.overtime.ListBySector(ctx, nil)
	case user.RoleManager:
		if actor.SectorID == nil {
			return []worktime.Overtime{}, nil
		}
		return s.overtime.ListBySector(ctx, actor.SectorID)
	default:
		if actor.EmployeeID == nil {
			return []worktime.Overtime{}, nil
		}
		entries, err := s.overtime.ListBySector(ctx, actor.SectorID)
		if err != nil {
			return nil, err
		}
		own := []worktime.Overtime{}
		for _, e := range entries {
			if e.EmployeeID == *actor.EmployeeID {
				own = append(own, e)
			}
		}
		return own, nil
	}
}

// SectorSickLeaves returns a sector's sick leaves intersecting [from, to].
func (s *Service) SectorSickLeaves(ctx context.Context, sectorID int64, from, to time.Time) ([]worktime.SickLeave, error) {
	return s.sickLeaves.ListOverlapping(ctx, sectorID, from, to)
}
