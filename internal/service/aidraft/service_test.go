package aidraft

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/directory"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/textgen"
)

type fakeEmployeeRepo struct {
	employees []directory.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (directory.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return directory.Employee{}, directory.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListBySector(_ context.Context, sectorID int64, _ bool) ([]directory.Employee, error) {
	out := []directory.Employee{}
	for _, e := range f.employees {
		if e.SectorID != nil && *e.SectorID == sectorID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeGridSaver struct {
	calls  []schedule.GridSaveRequest
	origin schedule.Origin
}

func (f *fakeGridSaver) SaveGrid(_ context.Context, _ int64, req schedule.GridSaveRequest, origin schedule.Origin) (schedule.GridSaveResult, error) {
	f.calls = append(f.calls, req)
	f.origin = origin
	return schedule.GridSaveResult{Processed: len(req.Cells)}, nil
}

func sectorPtr(v int64) *int64 { return &v }

func newImportFixture(employees []directory.Employee) (*Service, *fakeGridSaver) {
	grid := &fakeGridSaver{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(nil, &fakeEmployeeRepo{employees: employees}, nil, nil, nil, nil, nil, grid, logger)
	return svc, grid
}

func managerActor() auth.Actor {
	sector := int64(3)
	return auth.Actor{UserID: 2, Role: user.RoleManager, SectorID: &sector}
}

func TestImportDraftMapsRowsToCells(t *testing.T) {
	svc, grid := newImportFixture([]directory.Employee{
		{ID: 10, FirstName: "Ana", LastName: "Horvat", SectorID: sectorPtr(3)},
		{ID: 11, FirstName: "Ivan", LastName: "Kovač", SectorID: sectorPtr(3)},
	})

	draft := "| Zaposlenik | 2026-09-07 | Napomena | 2026-09-08 |\n" +
		"|---|---|---|---|\n" +
		"| Ana Horvat (Recepcioner) | Jutarnja (07:00-15:00) | vidi dolje | SLOBODAN |\n" +
		"| Ivan Kovač (Voditelj) | Popodnevna (15:00-23:00) | | Jutarnja (07:00-15:00) |\n" +
		"| Petar Babić (Kuhar) | Jutarnja (07:00-15:00) | | |\n"

	result, err := svc.ImportDraft(context.Background(), managerActor(), ImportRequest{SectorID: 3, Draft: draft})
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsProcessed)
	assert.Equal(t, 1, result.RowsSkipped)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "Petar Babić (Kuhar)", result.Skipped[0].Name)
	assert.Equal(t, "no matching employee", result.Skipped[0].Reason)

	// Two matched rows, two date columns each; the "Napomena" column is not
	// a date and produced no writes.
	require.Len(t, grid.calls, 1)
	req := grid.calls[0]
	assert.Equal(t, int64(3), req.SectorID)
	require.Len(t, req.Cells, 4)
	assert.Equal(t, schedule.CellWrite{EmployeeID: 10, Date: "2026-09-07", Value: "Jutarnja (07:00-15:00)"}, req.Cells[0])
	assert.Equal(t, schedule.CellWrite{EmployeeID: 10, Date: "2026-09-08", Value: "SLOBODAN"}, req.Cells[1])
	assert.Equal(t, schedule.CellWrite{EmployeeID: 11, Date: "2026-09-07", Value: "Popodnevna (15:00-23:00)"}, req.Cells[2])
	assert.Equal(t, schedule.CellWrite{EmployeeID: 11, Date: "2026-09-08", Value: "Jutarnja (07:00-15:00)"}, req.Cells[3])

	assert.Equal(t, schedule.OriginAI, grid.origin)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.ImportID.String())
}

func TestImportDraftWithoutTable(t *testing.T) {
	svc, grid := newImportFixture(nil)

	_, err := svc.ImportDraft(context.Background(), managerActor(), ImportRequest{
		SectorID: 3,
		Draft:    "Nažalost ne mogu generirati raspored.",
	})
	require.ErrorIs(t, err, textgen.ErrEmptyResponse)
	assert.Empty(t, grid.calls)
}

func TestImportDraftValidation(t *testing.T) {
	svc, _ := newImportFixture(nil)

	_, err := svc.ImportDraft(context.Background(), managerActor(), ImportRequest{SectorID: 0, Draft: ""})
	require.Error(t, err)
}

func TestImportDraftNoUsableCellsSkipsSave(t *testing.T) {
	svc, grid := newImportFixture([]directory.Employee{
		{ID: 10, FirstName: "Ana", LastName: "Horvat", SectorID: sectorPtr(3)},
	})

	// Matching row, but no date column survives.
	draft := "| Zaposlenik | Ponedjeljak |\n" +
		"| Ana Horvat | Jutarnja |\n"

	result, err := svc.ImportDraft(context.Background(), managerActor(), ImportRequest{SectorID: 3, Draft: draft})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsProcessed)
	assert.Empty(t, grid.calls)
	assert.Equal(t, 0, result.Cells.Processed)
}
