package worktime

import (
	"context"
	"time"
)

type SickLeaveRepository interface {
	Create(ctx context.Context, s SickLeave) (SickLeave, error)
	// ListOverlapping returns a sector's sick leaves intersecting [from, to].
	ListOverlapping(ctx context.Context, sectorID int64, from, to time.Time) ([]SickLeave, error)
}

type OvertimeRepository interface {
	Create(ctx context.Context, o Overtime) (Overtime, error)
	GetByID(ctx context.Context, id int64) (Overtime, error)
	ListBySector(ctx context.Context, sectorID *int64) ([]Overtime, error)
	// Approve transitions an unapproved entry and records the approver; it
	// reports false when the entry was already approved.
	Approve(ctx context.Context, id int64, approvedBy int64) (bool, error)
}
