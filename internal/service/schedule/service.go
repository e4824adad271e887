package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/audit"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type Service struct {
	repo       schedule.Repository
	tx         database.TxRunner
	dispatcher notification.Dispatcher
	recorder   audit.Recorder
	logger     *slog.Logger
}

func NewService(
	repo schedule.Repository,
	tx database.TxRunner,
	dispatcher notification.Dispatcher,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		tx:         tx,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
	}
}

// UpsertOrClear applies one parsed cell value to the (employee, date) pair.
// An empty value clears any existing entry; a non-empty value creates or
// rewrites the entry. Re-applying the same value is a noop, so saves are
// idempotent.
func (s *Service) UpsertOrClear(ctx context.Context, sectorID, employeeID int64, date time.Time, value schedule.ShiftValue, origin schedule.Origin) (schedule.Outcome, error) {
	date = schedule.Day(date)

	existing, err := s.repo.GetByEmployeeDate(ctx, employeeID, date)
	found := err == nil
	if err != nil && err != schedule.ErrEntryNotFound {
		return schedule.OutcomeNoop, fmt.Errorf("failed to look up schedule entry: %w", err)
	}

	if value.IsEmpty() {
		if !found {
			return schedule.OutcomeNoop, nil
		}
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return schedule.OutcomeNoop, fmt.Errorf("failed to delete schedule entry: %w", err)
		}
		return schedule.OutcomeDeleted, nil
	}

	label := value.StoreLabel()
	if !found {
		_, err := s.repo.Insert(ctx, schedule.Entry{
			SectorID:   sectorID,
			EmployeeID: employeeID,
			Date:       date,
			Label:      label,
			Origin:     origin,
		})
		if err != nil {
			return schedule.OutcomeNoop, fmt.Errorf("failed to insert schedule entry: %w", err)
		}
		return schedule.OutcomeCreated, nil
	}

	if existing.Label == label {
		return schedule.OutcomeNoop, nil
	}
	if err := s.repo.UpdateLabel(ctx, existing.ID, label, origin); err != nil {
		return schedule.OutcomeNoop, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return schedule.OutcomeUpdated, nil
}

// SaveGrid applies a week grid cell by cell. Each cell runs in its own
// transaction so one bad cell never discards the rest of the grid; failures
// come back in the per-cell results. When anything actually changed, the
// sector's employees get one schedule_updated notification.
func (s *Service) SaveGrid(ctx context.Context, actor int64, req schedule.GridSaveRequest, origin schedule.Origin) (schedule.GridSaveResult, error) {
	if err := req.Validate(); err != nil {
		return schedule.GridSaveResult{}, err
	}

	result := schedule.GridSaveResult{Cells: make([]schedule.CellResult, 0, len(req.Cells))}
	changed := 0

	for _, cell := range req.Cells {
		cellResult := schedule.CellResult{EmployeeID: cell.EmployeeID, Date: cell.Date}

		date, err := time.Parse("2006-01-02", cell.Date)
		if err != nil {
			cellResult.Error = schedule.ErrInvalidDate.Error()
			result.Failed++
			result.Cells = append(result.Cells, cellResult)
			continue
		}

		value := schedule.ParseShiftValue(cell.Value)
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			outcome, err := s.UpsertOrClear(ctx, req.SectorID, cell.EmployeeID, date, value, origin)
			cellResult.Outcome = outcome
			return err
		})
		if err != nil {
			s.logger.Warn("schedule cell save failed",
				slog.Int64("employee_id", cell.EmployeeID),
				slog.String("date", cell.Date),
				slog.Any("error", err))
			cellResult.Error = err.Error()
			result.Failed++
		} else {
			result.Processed++
			if cellResult.Outcome != schedule.OutcomeNoop {
				changed++
			}
		}
		result.Cells = append(result.Cells, cellResult)
	}

	if changed > 0 {
		s.notifySectorUpdated(ctx, req.SectorID)
		s.recorder.Record(ctx, &actor, "schedule.grid_saved", map[string]interface{}{
			"sector_id": req.SectorID,
			"cells":     len(req.Cells),
			"changed":   changed,
			"failed":    result.Failed,
		})
	}

	return result, nil
}

func (s *Service) notifySectorUpdated(ctx context.Context, sectorID int64) {
	link := "schedule"
	err := s.dispatcher.Notify(ctx,
		notification.KindScheduleUpdated,
		"Raspored vaše smjene je ažuriran.",
		notification.TargetRoleSector(user.RoleEmployee, sectorID),
		&link,
	)
	if err != nil {
		s.logger.Warn("failed to notify sector about schedule update",
			slog.Int64("sector_id", sectorID),
			slog.Any("error", err))
	}
}

// WeekGrid returns a sector's entries for the seven days starting at weekStart.
func (s *Service) WeekGrid(ctx context.Context, sectorID int64, weekStart time.Time) ([]schedule.EntryResponse, error) {
	from := schedule.Day(weekStart)
	to := from.AddDate(0, 0, 6)

	entries, err := s.repo.ListBySector(ctx, sectorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	responses := make([]schedule.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, schedule.ToEntryResponse(e))
	}
	return responses, nil
}

// EmployeeSchedule returns one employee's entries in [from, to].
func (s *Service) EmployeeSchedule(ctx context.Context, employeeID int64, from, to time.Time) ([]schedule.EntryResponse, error) {
	entries, err := s.repo.ListByEmployee(ctx, employeeID, schedule.Day(from), schedule.Day(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	responses := make([]schedule.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, schedule.ToEntryResponse(e))
	}
	return responses, nil
}
