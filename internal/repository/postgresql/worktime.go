package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/worktime"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type sickLeaveRepositoryImpl struct {
	db *database.DB
}

func NewSickLeaveRepository(db *database.DB) worktime.SickLeaveRepository {
	return &sickLeaveRepositoryImpl{db: db}
}

// Create implements worktime.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) Create(ctx context.Context, s worktime.SickLeave) (worktime.SickLeave, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO sick_leaves (employee_id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, s.EmployeeID, s.Start, s.End, s.Status).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return worktime.SickLeave{}, err
	}
	return s, nil
}

// ListOverlapping implements worktime.SickLeaveRepository.
func (r *sickLeaveRepositoryImpl) ListOverlapping(ctx context.Context, sectorID int64, from, to time.Time) ([]worktime.SickLeave, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT s.id, s.employee_id, s.start_date, s.end_date, s.status, s.created_at,
			e.first_name || ' ' || e.last_name AS employee_name
		FROM sick_leaves s
		JOIN employees e ON s.employee_id = e.id
		WHERE e.sector_id = $1
		AND s.start_date <= $3
		AND s.end_date >= $2
		ORDER BY s.start_date, s.id
	`

	rows, err := q.Query(ctx, query, sectorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves := []worktime.SickLeave{}
	for rows.Next() {
		var s worktime.SickLeave
		err := rows.Scan(&s.ID, &s.EmployeeID, &s.Start, &s.End, &s.Status, &s.CreatedAt, &s.EmployeeName)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, s)
	}
	return leaves, rows.Err()
}

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) worktime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeColumns = `
	o.id, o.employee_id, o.date, o.hours, o.reason, o.approved, o.approved_by, o.created_at,
	e.first_name || ' ' || e.last_name AS employee_name,
	e.sector_id
`

// Create implements worktime.OvertimeRepository.
func (r *overtimeRepositoryImpl) Create(ctx context.Context, o worktime.Overtime) (worktime.Overtime, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO overtime_entries (employee_id, date, hours, reason, approved, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, o.EmployeeID, o.Date, o.Hours, o.Reason).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return worktime.Overtime{}, err
	}
	return o, nil
}

// GetByID implements worktime.OvertimeRepository.
func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id int64) (worktime.Overtime, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_entries o
		JOIN employees e ON o.employee_id = e.id
		WHERE o.id = $1
	`

	var o worktime.Overtime
	err := q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.EmployeeID, &o.Date, &o.Hours, &o.Reason,
		&o.Approved, &o.ApprovedBy, &o.CreatedAt, &o.EmployeeName, &o.SectorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worktime.Overtime{}, worktime.ErrOvertimeNotFound
		}
		return worktime.Overtime{}, err
	}
	return o, nil
}

// ListBySector implements worktime.OvertimeRepository. A nil sectorID lists
// every sector.
func (r *overtimeRepositoryImpl) ListBySector(ctx context.Context, sectorID *int64) ([]worktime.Overtime, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_entries o
		JOIN employees e ON o.employee_id = e.id
		WHERE ($1::bigint IS NULL OR e.sector_id = $1)
		ORDER BY o.date DESC, o.id DESC
	`

	rows, err := q.Query(ctx, query, sectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []worktime.Overtime{}
	for rows.Next() {
		var o worktime.Overtime
		err := rows.Scan(
			&o.ID, &o.EmployeeID, &o.Date, &o.Hours, &o.Reason,
			&o.Approved, &o.ApprovedBy, &o.CreatedAt, &o.EmployeeName, &o.SectorID,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, o)
	}
	return entries, rows.Err()
}

// Approve implements worktime.OvertimeRepository. The approved = FALSE guard
// makes a repeated decision a no-op reported to the caller, including under
// concurrent approvals.
func (r *overtimeRepositoryImpl) Approve(ctx context.Context, id int64, approvedBy int64) (bool, error) {
	q := r.db.Querier(ctx)

	query := `
		UPDATE overtime_entries
		SET approved = TRUE, approved_by = $2
		WHERE id = $1 AND approved = FALSE
	`

	tag, err := q.Exec(ctx, query, id, approvedBy)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
