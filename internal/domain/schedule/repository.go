package schedule

import (
	"context"
	"time"
)

type Repository interface {
	// GetByEmployeeDate returns ErrEntryNotFound when the pair has no row.
	GetByEmployeeDate(ctx context.Context, employeeID int64, date time.Time) (Entry, error)
	ListBySector(ctx context.Context, sectorID int64, from, to time.Time) ([]Entry, error)
	ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]Entry, error)
	Insert(ctx context.Context, entry Entry) (Entry, error)
	// UpdateLabel rewrites the label and origin in place, preserving the row id.
	UpdateLabel(ctx context.Context, id int64, label string, origin Origin) error
	Delete(ctx context.Context, id int64) error
}
