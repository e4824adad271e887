package aidraft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/worktime"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/textgen"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/validator"
)

// GridSaver is the slice of the schedule workflow the importer drives:
// applying parsed cells with AI origin, one transaction per cell.
type GridSaver interface {
	SaveGrid(ctx context.Context, actor int64, req schedule.GridSaveRequest, origin schedule.Origin) (schedule.GridSaveResult, error)
}

type Service struct {
	generator  textgen.Generator
	employees  directory.EmployeeRepository
	sectors    directory.SectorRepository
	shifts     directory.ShiftTemplateRepository
	events     directory.EventRepository
	leaves     leave.RequestRepository
	sickLeaves worktime.SickLeaveRepository
	grid       GridSaver
	logger     *slog.Logger
}

func NewService(
	generator textgen.Generator,
	employees directory.EmployeeRepository,
	sectors directory.SectorRepository,
	shifts directory.ShiftTemplateRepository,
	events directory.EventRepository,
	leaves leave.RequestRepository,
	sickLeaves worktime.SickLeaveRepository,
	grid GridSaver,
	logger *slog.Logger,
) *Service {
	return &Service{
		generator:  generator,
		employees:  employees,
		sectors:    sectors,
		shifts:     shifts,
		events:     events,
		leaves:     leaves,
		sickLeaves: sickLeaves,
		grid:       grid,
		logger:     logger,
	}
}

type GenerateRequest struct {
	SectorID    int64  `json:"sector_id"`
	WeekStart   string `json:"week_start"` // YYYY-MM-DD
	Constraints string `json:"constraints"`
}

func (r GenerateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.SectorID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "sector_id", Message: "must be a positive id"})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "week_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateResponse struct {
	SectorID  int64  `json:"sector_id"`
	WeekStart string `json:"week_start"`
	Draft     string `json:"draft"`
}

// GenerateDraft asks the model for a week proposal. The prompt carries the
// sector's shift formats, the rank-ordered roster, known absences from
// approved leave and sick leave, and overlapping events; the draft comes
// back verbatim for review, nothing is written.
func (s *Service) GenerateDraft(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return GenerateResponse{}, err
	}

	sector, err := s.sectors.GetByID(ctx, req.SectorID)
	if err != nil {
		return GenerateResponse{}, err
	}

	weekStart, _ := time.Parse("2006-01-02", req.WeekStart)
	weekStart = schedule.Day(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	shifts, err := s.shifts.ListBySector(ctx, req.SectorID)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("failed to list shift templates: %w", err)
	}
	roster, err := s.employees.ListBySector(ctx, req.SectorID, true)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	absences, err := s.collectAbsences(ctx, req.SectorID, weekStart, weekEnd)
	if err != nil {
		return GenerateResponse{}, err
	}
	events, err := s.events.ListPlannedOverlapping(ctx, weekStart, weekEnd)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	prompt := BuildPrompt(sector.Name, weekStart, shifts, roster, absences, events, req.Constraints)

	draft, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return GenerateResponse{}, err
	}

	return GenerateResponse{
		SectorID:  req.SectorID,
		WeekStart: weekStart.Format("2006-01-02"),
		Draft:     draft,
	}, nil
}

func (s *Service) collectAbsences(ctx context.Context, sectorID int64, from, to time.Time) ([]AbsenceWindow, error) {
	absences := []AbsenceWindow{}

	approved, err := s.leaves.ListApprovedOverlapping(ctx, sectorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	for _, r := range approved {
		name := ""
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		absences = append(absences, AbsenceWindow{
			EmployeeName: name,
			Kind:         "Godišnji odmor",
			Start:        r.StartDate,
			End:          r.EndDate,
		})
	}

	sick, err := s.sickLeaves.ListOverlapping(ctx, sectorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick leaves: %w", err)
	}
	for _, sl := range sick {
		name := ""
		if sl.EmployeeName != nil {
			name = *sl.EmployeeName
		}
		absences = append(absences, AbsenceWindow{
			EmployeeName: name,
			Kind:         "Bolovanje",
			Start:        sl.Start,
			End:          sl.End,
		})
	}

	return absences, nil
}

type ImportRequest struct {
	SectorID int64  `json:"sector_id"`
	Draft    string `json:"draft"`
}

func (r ImportRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.SectorID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "sector_id", Message: "must be a positive id"})
	}
	if validator.IsEmpty(r.Draft) {
		errs = append(errs, validator.ValidationError{Field: "draft", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SkippedRow explains why one draft row produced no schedule writes.
type SkippedRow struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	ImportID      uuid.UUID               `json:"import_id"`
	RowsProcessed int                     `json:"rows_processed"`
	RowsSkipped   int                     `json:"rows_skipped"`
	Skipped       []SkippedRow            `json:"skipped,omitempty"`
	Cells         schedule.GridSaveResult `json:"cells"`
}

// ImportDraft parses a reviewed draft and applies it to the schedule with
// AI origin. Rows that match no roster employee and columns whose header is
// not an ISO date are skipped and reported; matched cells go through the
// same per-cell transactional save as a manual grid edit, so a partial
// import never loses the good cells.
func (s *Service) ImportDraft(ctx context.Context, actor auth.Actor, req ImportRequest) (ImportResult, error) {
	if err := req.Validate(); err != nil {
		return ImportResult{}, err
	}

	table := ParseDraftTable(req.Draft)
	if len(table.Rows) == 0 {
		return ImportResult{}, textgen.ErrEmptyResponse
	}

	roster, err := s.employees.ListBySector(ctx, req.SectorID, false)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to list employees: %w", err)
	}
	names := make([]string, len(roster))
	for i, e := range roster {
		names[i] = e.FullName()
	}

	dates := make([]time.Time, len(table.Columns))
	usable := make([]bool, len(table.Columns))
	for i, col := range table.Columns {
		dates[i], usable[i] = ColumnDate(col)
	}

	result := ImportResult{ImportID: uuid.New()}
	gridReq := schedule.GridSaveRequest{SectorID: req.SectorID}

	for _, row := range table.Rows {
		idx, ok := MatchEmployee(row.Name, names)
		if !ok {
			result.RowsSkipped++
			result.Skipped = append(result.Skipped, SkippedRow{Name: row.Name, Reason: "no matching employee"})
			continue
		}
		result.RowsProcessed++

		for c, cell := range row.Cells {
			if c >= len(dates) || !usable[c] {
				continue
			}
			gridReq.Cells = append(gridReq.Cells, schedule.CellWrite{
				EmployeeID: roster[idx].ID,
				Date:       dates[c].Format("2006-01-02"),
				Value:      cell,
			})
		}
	}

	if len(gridReq.Cells) > 0 {
		result.Cells, err = s.grid.SaveGrid(ctx, actor.UserID, gridReq, schedule.OriginAI)
		if err != nil {
			return ImportResult{}, err
		}
	}

	s.logger.Info("ai draft imported",
		slog.String("import_id", result.ImportID.String()),
		slog.Int64("sector_id", req.SectorID),
		slog.Int("rows_processed", result.RowsProcessed),
		slog.Int("rows_skipped", result.RowsSkipped),
		slog.Int("cells_failed", result.Cells.Failed))

	return result, nil
}
