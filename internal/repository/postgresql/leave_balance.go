package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByEmployeeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID int64, year int) (leave.Balance, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, employee_id, year, entitled_days, used_days
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.Year, &balance.EntitledDays, &balance.UsedDays,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return balance, nil
}

// AddUsed implements leave.BalanceRepository. The guard lives in the WHERE
// clause so the increment and the entitlement check are one atomic
// statement.
func (r *leaveBalanceRepositoryImpl) AddUsed(ctx context.Context, employeeID int64, year int, delta int) error {
	q := r.db.Querier(ctx)

	commandTag, err := q.Exec(ctx, `
		UPDATE leave_balances
		SET used_days = used_days + $1
		WHERE employee_id = $2 AND year = $3
		  AND used_days + $1 <= entitled_days
	`, delta, employeeID, year)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 1 {
		return nil
	}

	// Distinguish a missing row from an exhausted balance.
	var exists bool
	if err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM leave_balances WHERE employee_id = $1 AND year = $2)
	`, employeeID, year).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return leave.ErrBalanceNotFound
	}
	return leave.ErrBalanceExceeded
}
