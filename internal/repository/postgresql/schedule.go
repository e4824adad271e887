package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepositoryImpl{db: db}
}

// GetByEmployeeDate implements schedule.Repository.
func (r *scheduleRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID int64, date time.Time) (schedule.Entry, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, sector_id, employee_id, date, label, origin
		FROM schedule_entries
		WHERE employee_id = $1 AND date = $2
	`

	var entry schedule.Entry
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&entry.ID, &entry.SectorID, &entry.EmployeeID, &entry.Date, &entry.Label, &entry.Origin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Entry{}, schedule.ErrEntryNotFound
		}
		return schedule.Entry{}, err
	}
	return entry, nil
}

// ListBySector implements schedule.Repository.
func (r *scheduleRepositoryImpl) ListBySector(ctx context.Context, sectorID int64, from, to time.Time) ([]schedule.Entry, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT s.id, s.sector_id, s.employee_id, s.date, s.label, s.origin
		FROM schedule_entries s
		JOIN employees e ON s.employee_id = e.id
		WHERE e.sector_id = $1 AND s.date BETWEEN $2 AND $3
		ORDER BY s.date, s.employee_id
	`

	rows, err := q.Query(ctx, query, sectorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByEmployee implements schedule.Repository.
func (r *scheduleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]schedule.Entry, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, sector_id, employee_id, date, label, origin
		FROM schedule_entries
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]schedule.Entry, error) {
	entries := make([]schedule.Entry, 0)
	for rows.Next() {
		var entry schedule.Entry
		if err := rows.Scan(
			&entry.ID, &entry.SectorID, &entry.EmployeeID, &entry.Date, &entry.Label, &entry.Origin,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Insert implements schedule.Repository.
func (r *scheduleRepositoryImpl) Insert(ctx context.Context, entry schedule.Entry) (schedule.Entry, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO schedule_entries (sector_id, employee_id, date, label, origin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		entry.SectorID, entry.EmployeeID, entry.Date, entry.Label, entry.Origin,
	).Scan(&entry.ID)
	if err != nil {
		return schedule.Entry{}, err
	}
	return entry, nil
}

// UpdateLabel implements schedule.Repository.
func (r *scheduleRepositoryImpl) UpdateLabel(ctx context.Context, id int64, label string, origin schedule.Origin) error {
	q := r.db.Querier(ctx)

	commandTag, err := q.Exec(ctx, `
		UPDATE schedule_entries SET label = $1, origin = $2 WHERE id = $3
	`, label, origin, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("schedule entry %d: %w", id, schedule.ErrEntryNotFound)
	}
	return nil
}

// Delete implements schedule.Repository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := r.db.Querier(ctx)

	commandTag, err := q.Exec(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return fmt.Errorf("schedule entry %d: %w", id, schedule.ErrEntryNotFound)
	}
	return nil
}
