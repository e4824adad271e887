package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) directory.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.first_name, e.last_name, e.oib, e.address, e.phone, e.email,
	e.status, e.sector_id, e.position_id, e.hire_date, e.termination_date,
	p.name AS position_name
`

// GetByID implements directory.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (directory.Employee, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN positions p ON e.position_id = p.id
		WHERE e.id = $1
	`

	var emp directory.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.OIB, &emp.Address, &emp.Phone,
		&emp.Email, &emp.Status, &emp.SectorID, &emp.PositionID, &emp.HireDate,
		&emp.TerminationDate, &emp.PositionName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.Employee{}, directory.ErrEmployeeNotFound
		}
		return directory.Employee{}, err
	}
	return emp, nil
}

// ListBySector implements directory.EmployeeRepository. Ordering mirrors the
// schedule grid: leads first, then line staff, alphabetical within rank.
func (r *employeeRepositoryImpl) ListBySector(ctx context.Context, sectorID int64, activeOnly bool) ([]directory.Employee, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN positions p ON e.position_id = p.id
		WHERE e.sector_id = $1 AND ($2 = false OR e.status = 'active')
		ORDER BY e.last_name, e.first_name
	`

	rows, err := q.Query(ctx, query, sectorID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]directory.Employee, 0)
	for rows.Next() {
		var emp directory.Employee
		if err := rows.Scan(
			&emp.ID, &emp.FirstName, &emp.LastName, &emp.OIB, &emp.Address, &emp.Phone,
			&emp.Email, &emp.Status, &emp.SectorID, &emp.PositionID, &emp.HireDate,
			&emp.TerminationDate, &emp.PositionName,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	directory.SortByPositionRank(employees)
	return employees, nil
}

type sectorRepositoryImpl struct {
	db *database.DB
}

func NewSectorRepository(db *database.DB) directory.SectorRepository {
	return &sectorRepositoryImpl{db: db}
}

// GetByID implements directory.SectorRepository.
func (r *sectorRepositoryImpl) GetByID(ctx context.Context, id int64) (directory.Sector, error) {
	q := r.db.Querier(ctx)

	var sector directory.Sector
	err := q.QueryRow(ctx, `SELECT id, name FROM sectors WHERE id = $1`, id).Scan(&sector.ID, &sector.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.Sector{}, directory.ErrSectorNotFound
		}
		return directory.Sector{}, err
	}
	return sector, nil
}

// List implements directory.SectorRepository.
func (r *sectorRepositoryImpl) List(ctx context.Context) ([]directory.Sector, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `SELECT id, name FROM sectors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectors := make([]directory.Sector, 0)
	for rows.Next() {
		var sector directory.Sector
		if err := rows.Scan(&sector.ID, &sector.Name); err != nil {
			return nil, err
		}
		sectors = append(sectors, sector)
	}
	return sectors, rows.Err()
}

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) directory.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// GetByID implements directory.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id int64) (directory.Position, error) {
	q := r.db.Querier(ctx)

	var position directory.Position
	err := q.QueryRow(ctx, `SELECT id, sector_id, name FROM positions WHERE id = $1`, id).Scan(
		&position.ID, &position.SectorID, &position.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.Position{}, directory.ErrPositionNotFound
		}
		return directory.Position{}, err
	}
	return position, nil
}

// ListBySector implements directory.PositionRepository.
func (r *positionRepositoryImpl) ListBySector(ctx context.Context, sectorID int64) ([]directory.Position, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `SELECT id, sector_id, name FROM positions WHERE sector_id = $1 ORDER BY name`, sectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]directory.Position, 0)
	for rows.Next() {
		var position directory.Position
		if err := rows.Scan(&position.ID, &position.SectorID, &position.Name); err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}
	return positions, rows.Err()
}

type shiftTemplateRepositoryImpl struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) directory.ShiftTemplateRepository {
	return &shiftTemplateRepositoryImpl{db: db}
}

// ListBySector implements directory.ShiftTemplateRepository. Start and end
// are stored as time columns; the five-character slice drops seconds to
// match the "HH:MM-HH:MM" cell format.
func (r *shiftTemplateRepositoryImpl) ListBySector(ctx context.Context, sectorID int64) ([]directory.ShiftTemplate, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, sector_id, name,
		       substr(start_time::text, 1, 5), substr(end_time::text, 1, 5)
		FROM shift_templates
		WHERE sector_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, sectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]directory.ShiftTemplate, 0)
	for rows.Next() {
		var t directory.ShiftTemplate
		if err := rows.Scan(&t.ID, &t.SectorID, &t.Name, &t.Start, &t.End); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

type contractRepositoryImpl struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) directory.ContractRepository {
	return &contractRepositoryImpl{db: db}
}

// LatestByEmployee implements directory.ContractRepository.
func (r *contractRepositoryImpl) LatestByEmployee(ctx context.Context, employeeID int64) (directory.Contract, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, employee_id, type, start_date, end_date, gross, net, created_at
		FROM contracts
		WHERE employee_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var contract directory.Contract
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&contract.ID, &contract.EmployeeID, &contract.Type, &contract.Start,
		&contract.End, &contract.Gross, &contract.Net, &contract.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return directory.Contract{}, directory.ErrContractNotFound
		}
		return directory.Contract{}, err
	}
	return contract, nil
}

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) directory.EventRepository {
	return &eventRepositoryImpl{db: db}
}

// ListPlannedOverlapping implements directory.EventRepository.
func (r *eventRepositoryImpl) ListPlannedOverlapping(ctx context.Context, from, to time.Time) ([]directory.Event, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT id, name, type, start_date, end_date, description, status
		FROM events
		WHERE status = 'planned' AND end_date >= $1 AND start_date <= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]directory.Event, 0)
	for rows.Next() {
		var event directory.Event
		if err := rows.Scan(
			&event.ID, &event.Name, &event.Type, &event.Start, &event.End,
			&event.Description, &event.Status,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
