package schedule

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
)

type fakeScheduleRepo struct {
	nextID  int64
	entries map[int64]schedule.Entry
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{entries: map[int64]schedule.Entry{}}
}

func (f *fakeScheduleRepo) GetByEmployeeDate(_ context.Context, employeeID int64, date time.Time) (schedule.Entry, error) {
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && e.Date.Equal(date) {
			return e, nil
		}
	}
	return schedule.Entry{}, schedule.ErrEntryNotFound
}

func (f *fakeScheduleRepo) ListBySector(_ context.Context, sectorID int64, from, to time.Time) ([]schedule.Entry, error) {
	out := []schedule.Entry{}
	for _, e := range f.entries {
		if e.SectorID == sectorID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListByEmployee(_ context.Context, employeeID int64, from, to time.Time) ([]schedule.Entry, error) {
	out := []schedule.Entry{}
	for _, e := range f.entries {
		if e.EmployeeID == employeeID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Insert(_ context.Context, entry schedule.Entry) (schedule.Entry, error) {
	f.nextID++
	entry.ID = f.nextID
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeScheduleRepo) UpdateLabel(_ context.Context, id int64, label string, origin schedule.Origin) error {
	e, ok := f.entries[id]
	if !ok {
		return schedule.ErrEntryNotFound
	}
	e.Label = label
	e.Origin = origin
	f.entries[id] = e
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.entries[id]; !ok {
		return schedule.ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingDispatcher struct {
	sent []notification.Kind
}

func (d *recordingDispatcher) Notify(_ context.Context, kind notification.Kind, _ string, target notification.Target, _ *string) error {
	if !target.Valid() {
		return notification.ErrInvalidTarget
	}
	d.sent = append(d.sent, kind)
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, *int64, string, map[string]interface{}) {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestUpsertOrClearStateMachine(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo, passthroughTx{}, &recordingDispatcher{}, nopRecorder{}, testLogger())
	ctx := context.Background()
	d := day("2026-09-07")

	// Empty value on an empty cell: nothing happens.
	outcome, err := svc.UpsertOrClear(ctx, 1, 10, d, schedule.Empty(), schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeNoop, outcome)
	assert.Empty(t, repo.entries)

	// First assignment creates the row.
	outcome, err = svc.UpsertOrClear(ctx, 1, 10, d, schedule.Assigned("07:00-15:00"), schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeCreated, outcome)
	require.Len(t, repo.entries, 1)

	// The same value again is idempotent.
	outcome, err = svc.UpsertOrClear(ctx, 1, 10, d, schedule.Assigned("07:00-15:00"), schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeNoop, outcome)
	assert.Len(t, repo.entries, 1)

	// A different value rewrites in place, preserving the row id.
	outcome, err = svc.UpsertOrClear(ctx, 1, 10, d, schedule.Assigned("15:00-23:00"), schedule.OriginAI)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeUpdated, outcome)
	require.Len(t, repo.entries, 1)
	entry, err := repo.GetByEmployeeDate(ctx, 10, d)
	require.NoError(t, err)
	assert.Equal(t, "15:00-23:00", entry.Label)
	assert.Equal(t, schedule.OriginAI, entry.Origin)
	assert.Equal(t, int64(1), entry.ID)

	// Leave sentinel stores the reserved label.
	outcome, err = svc.UpsertOrClear(ctx, 1, 10, d, schedule.OnLeave(), schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeUpdated, outcome)
	entry, _ = repo.GetByEmployeeDate(ctx, 10, d)
	assert.Equal(t, schedule.LeaveLabel, entry.Label)

	// Clearing deletes the row; clearing again is a noop.
	outcome, err = svc.UpsertOrClear(ctx, 1, 10, d, schedule.Empty(), schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeDeleted, outcome)
	assert.Empty(t, repo.entries)

	outcome, err = svc.UpsertOrClear(ctx, 1, 10, d, schedule.Empty(), schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeNoop, outcome)
}

func TestSaveGridBestEffort(t *testing.T) {
	repo := newFakeScheduleRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewService(repo, passthroughTx{}, dispatcher, nopRecorder{}, testLogger())
	ctx := context.Background()

	result, err := svc.SaveGrid(ctx, 1, schedule.GridSaveRequest{
		SectorID: 1,
		Cells: []schedule.CellWrite{
			{EmployeeID: 10, Date: "2026-09-07", Value: "07:00-15:00"},
			{EmployeeID: 10, Date: "not-a-date", Value: "07:00-15:00"},
			{EmployeeID: 11, Date: "2026-09-07", Value: "slobodan"},
		},
	}, schedule.OriginManual)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Cells, 3)
	assert.Equal(t, schedule.OutcomeCreated, result.Cells[0].Outcome)
	assert.True(t, result.Cells[1].Failed())
	assert.Equal(t, schedule.OutcomeNoop, result.Cells[2].Outcome)

	// One real change happened, so the sector was notified once.
	assert.Equal(t, []notification.Kind{notification.KindScheduleUpdated}, dispatcher.sent)

	// Saving the identical grid again changes nothing and stays quiet.
	dispatcher.sent = nil
	result, err = svc.SaveGrid(ctx, 1, schedule.GridSaveRequest{
		SectorID: 1,
		Cells: []schedule.CellWrite{
			{EmployeeID: 10, Date: "2026-09-07", Value: "07:00-15:00"},
		},
	}, schedule.OriginManual)
	require.NoError(t, err)
	assert.Equal(t, schedule.OutcomeNoop, result.Cells[0].Outcome)
	assert.Empty(t, dispatcher.sent)
}

func TestSaveGridValidation(t *testing.T) {
	svc := NewService(newFakeScheduleRepo(), passthroughTx{}, &recordingDispatcher{}, nopRecorder{}, testLogger())

	_, err := svc.SaveGrid(context.Background(), 1, schedule.GridSaveRequest{SectorID: 0}, schedule.OriginManual)
	require.Error(t, err)
}

func TestWeekGrid(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewService(repo, passthroughTx{}, &recordingDispatcher{}, nopRecorder{}, testLogger())
	ctx := context.Background()

	_, err := svc.UpsertOrClear(ctx, 1, 10, day("2026-09-07"), schedule.Assigned("07:00-15:00"), schedule.OriginManual)
	require.NoError(t, err)
	_, err = svc.UpsertOrClear(ctx, 1, 10, day("2026-09-20"), schedule.Assigned("07:00-15:00"), schedule.OriginManual)
	require.NoError(t, err)

	entries, err := svc.WeekGrid(ctx, 1, day("2026-09-07"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-09-07", entries[0].Date)
}
