package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `
	u.id, u.username, u.password_hash, u.role, u.employee_id, u.created_at
`

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id = $1
	`

	return r.scanOne(q.QueryRow(ctx, query, id))
}

// GetByUsername implements user.Repository.
func (r *userRepositoryImpl) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.username = $1
	`

	return r.scanOne(q.QueryRow(ctx, query, username))
}

// GetByEmployeeID implements user.Repository.
func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID int64) (user.User, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.employee_id = $1
	`

	return r.scanOne(q.QueryRow(ctx, query, employeeID))
}

// ListByRole implements user.Repository. A non-nil sectorID narrows the
// result to accounts whose linked employee works in that sector.
func (r *userRepositoryImpl) ListByRole(ctx context.Context, role user.Role, sectorID *int64) ([]user.User, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON u.employee_id = e.id
		WHERE u.role = $1
		AND ($2::bigint IS NULL OR e.sector_id = $2)
		ORDER BY u.id
	`

	rows, err := q.Query(ctx, query, role, sectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.User{}
	for rows.Next() {
		var u user.User
		err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepositoryImpl) scanOne(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
