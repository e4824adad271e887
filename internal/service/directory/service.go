package directory

import (
	"context"
	"fmt"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
)

// Service bundles the read-only lookups the grid, approval and AI flows
// all lean on.
type Service struct {
	employees directory.EmployeeRepository
	sectors   directory.SectorRepository
	shifts    directory.ShiftTemplateRepository
	contracts directory.ContractRepository
}

func NewService(
	employees directory.EmployeeRepository,
	sectors directory.SectorRepository,
	shifts directory.ShiftTemplateRepository,
	contracts directory.ContractRepository,
) *Service {
	return &Service{
		employees: employees,
		sectors:   sectors,
		shifts:    shifts,
		contracts: contracts,
	}
}

func (s *Service) Sectors(ctx context.Context) ([]directory.SectorResponse, error) {
	sectors, err := s.sectors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}

	responses := make([]directory.SectorResponse, 0, len(sectors))
	for _, sec := range sectors {
		responses = append(responses, directory.SectorResponse{ID: sec.ID, Name: sec.Name})
	}
	return responses, nil
}

// SectorEmployees returns a sector's roster ordered by position rank then
// last name, the order the schedule grid displays.
func (s *Service) SectorEmployees(ctx context.Context, sectorID int64, activeOnly bool) ([]directory.EmployeeResponse, error) {
	if _, err := s.sectors.GetByID(ctx, sectorID); err != nil {
		return nil, err
	}
	employees, err := s.employees.ListBySector(ctx, sectorID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]directory.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, directory.ToEmployeeResponse(e))
	}
	return responses, nil
}

func (s *Service) Employee(ctx context.Context, id int64) (directory.EmployeeResponse, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return directory.EmployeeResponse{}, err
	}
	return directory.ToEmployeeResponse(employee), nil
}

func (s *Service) SectorShiftTemplates(ctx context.Context, sectorID int64) ([]directory.ShiftTemplateResponse, error) {
	templates, err := s.shifts.ListBySector(ctx, sectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	responses := make([]directory.ShiftTemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, directory.ToShiftTemplateResponse(t))
	}
	return responses, nil
}

// EmployeeContract returns the employee's most recent contract.
func (s *Service) EmployeeContract(ctx context.Context, employeeID int64) (directory.ContractResponse, error) {
	contract, err := s.contracts.LatestByEmployee(ctx, employeeID)
	if err != nil {
		return directory.ContractResponse{}, err
	}
	return directory.ToContractResponse(contract), nil
}
