package schedule

import (
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/pkg/validator"
)

// CellWrite is one grid cell to apply: a raw value for one (employee, date).
type CellWrite struct {
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Value      string `json:"value"`
}

// GridSaveRequest is a bulk save of a sector's week grid.
type GridSaveRequest struct {
	SectorID int64       `json:"sector_id"`
	Cells    []CellWrite `json:"cells"`
}

func (r GridSaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.SectorID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "sector_id", Message: "must be a positive id"})
	}
	if len(r.Cells) == 0 {
		errs = append(errs, validator.ValidationError{Field: "cells", Message: "must not be empty"})
	}
	for _, c := range r.Cells {
		if c.EmployeeID <= 0 {
			errs = append(errs, validator.ValidationError{Field: "cells.employee_id", Message: "must be a positive id"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CellResult is the per-cell outcome of a bulk save. Failures are carried
// back to the caller instead of being swallowed.
type CellResult struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"`
	Outcome    Outcome `json:"outcome"`
	Error      string  `json:"error,omitempty"`
}

func (r CellResult) Failed() bool { return r.Error != "" }

// GridSaveResult tallies a best-effort bulk save.
type GridSaveResult struct {
	Processed int          `json:"processed"`
	Failed    int          `json:"failed"`
	Cells     []CellResult `json:"cells"`
}

// EntryResponse is the wire form of a schedule entry.
type EntryResponse struct {
	ID         int64  `json:"id"`
	SectorID   int64  `json:"sector_id"`
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`
	Label      string `json:"label"`
	Origin     Origin `json:"origin"`
}

func ToEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		SectorID:   e.SectorID,
		EmployeeID: e.EmployeeID,
		Date:       e.Date.Format("2006-01-02"),
		Label:      e.Label,
		Origin:     e.Origin,
	}
}

// Day truncates t to a calendar date at midnight UTC; every schedule key
// goes through this so (employee, date) comparisons are exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
