package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	r.id, r.employee_id, r.start_date, r.end_date, r.days, r.status,
	r.decided_by, r.decided_at, r.created_at,
	e.first_name || ' ' || e.last_name AS employee_name,
	e.sector_id
`

// Create implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO leave_requests (employee_id, start_date, end_date, days, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.StartDate, request.EndDate, request.Days, request.Status,
	).Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.Request, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1
	`

	var request leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.StartDate, &request.EndDate,
		&request.Days, &request.Status, &request.DecidedBy, &request.DecidedAt,
		&request.CreatedAt, &request.EmployeeName, &request.SectorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return request, nil
}

// List implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, status *leave.RequestStatus, sectorID *int64) ([]leave.Request, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE ($1::text IS NULL OR r.status = $1)
		  AND ($2::bigint IS NULL OR e.sector_id = $2)
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, status, sectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.Request, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.employee_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// UpdateStatus implements leave.RequestRepository. The source-state check
// lives in the WHERE clause: two concurrent approvals race on the same row
// and only one sees RowsAffected == 1.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, from, to leave.RequestStatus, decidedBy int64, decidedAt time.Time) (bool, error) {
	q := r.db.Querier(ctx)

	commandTag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3
		WHERE id = $4 AND status = $5
	`, to, decidedBy, decidedAt, id, from)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

// ListApprovedOverlapping implements leave.RequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, sectorID int64, from, to time.Time) ([]leave.Request, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE e.sector_id = $1 AND r.status = 'approved'
		  AND r.end_date >= $2 AND r.start_date <= $3
		ORDER BY r.start_date
	`

	rows, err := q.Query(ctx, query, sectorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	requests := make([]leave.Request, 0)
	for rows.Next() {
		var request leave.Request
		if err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.StartDate, &request.EndDate,
			&request.Days, &request.Status, &request.DecidedBy, &request.DecidedAt,
			&request.CreatedAt, &request.EmployeeName, &request.SectorID,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}
