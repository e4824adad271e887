package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// GetByEmployeeID returns ErrUserNotFound when the employee has no
	// linked login account.
	GetByEmployeeID(ctx context.Context, employeeID int64) (User, error)
	// ListByRole returns all users with the given role. When sectorID is
	// non-nil only users whose linked employee belongs to that sector are
	// returned.
	ListByRole(ctx context.Context, role Role, sectorID *int64) ([]User, error)
}
