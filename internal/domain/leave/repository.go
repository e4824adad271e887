package leave

import (
	"context"
	"time"
)

type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id int64) (Request, error)
	// List returns requests, optionally narrowed by status and by the
	// employee's sector.
	List(ctx context.Context, status *RequestStatus, sectorID *int64) ([]Request, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Request, error)
	// UpdateStatus transitions id from `from` to `to` and records the
	// decider. It reports false when no row was in the source state, which
	// is how concurrent double-approval is detected.
	UpdateStatus(ctx context.Context, id int64, from, to RequestStatus, decidedBy int64, decidedAt time.Time) (bool, error)
	// ListApprovedOverlapping returns approved requests for a sector's
	// employees whose range intersects [from, to]; feeds the AI prompt's
	// absence windows.
	ListApprovedOverlapping(ctx context.Context, sectorID int64, from, to time.Time) ([]Request, error)
}

type BalanceRepository interface {
	// GetByEmployeeYear returns ErrBalanceNotFound when no row exists for
	// the (employee, year) pair.
	GetByEmployeeYear(ctx context.Context, employeeID int64, year int) (Balance, error)
	// AddUsed increments used_days by delta (always positive from the
	// workflow). It fails with ErrBalanceExceeded when the increment would
	// push used_days past entitled_days, and ErrBalanceNotFound when the
	// row is missing.
	AddUsed(ctx context.Context, employeeID int64, year int, delta int) error
}
