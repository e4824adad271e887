package directory

import (
	"context"
	"time"
)

// EmployeeRepository - read-only lookups; unknown ids return
// ErrEmployeeNotFound, list queries return empty slices.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	// ListBySector returns employees of a sector ordered by position rank
	// then last name. activeOnly narrows to active employment status.
	ListBySector(ctx context.Context, sectorID int64, activeOnly bool) ([]Employee, error)
}

type SectorRepository interface {
	GetByID(ctx context.Context, id int64) (Sector, error)
	List(ctx context.Context) ([]Sector, error)
}

type PositionRepository interface {
	GetByID(ctx context.Context, id int64) (Position, error)
	ListBySector(ctx context.Context, sectorID int64) ([]Position, error)
}

type ShiftTemplateRepository interface {
	ListBySector(ctx context.Context, sectorID int64) ([]ShiftTemplate, error)
}

type ContractRepository interface {
	LatestByEmployee(ctx context.Context, employeeID int64) (Contract, error)
}

type EventRepository interface {
	// ListPlannedOverlapping returns planned events whose window intersects
	// [from, to].
	ListPlannedOverlapping(ctx context.Context, from, to time.Time) ([]Event, error)
}
