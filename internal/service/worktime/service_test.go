package worktime

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/worktime"
)

type fakeSickLeaveRepo struct {
	nextID int64
	rows   []worktime.SickLeave
}

func (f *fakeSickLeaveRepo) Create(_ context.Context, s worktime.SickLeave) (worktime.SickLeave, error) {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	f.rows = append(f.rows, s)
	return s, nil
}

func (f *fakeSickLeaveRepo) ListOverlapping(_ context.Context, _ int64, from, to time.Time) ([]worktime.SickLeave, error) {
	out := []worktime.SickLeave{}
	for _, s := range f.rows {
		if !s.Start.After(to) && !s.End.Before(from) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeOvertimeRepo struct {
	nextID int64
	rows   map[int64]worktime.Overtime
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{rows: map[int64]worktime.Overtime{}}
}

func (f *fakeOvertimeRepo) Create(_ context.Context, o worktime.Overtime) (worktime.Overtime, error) {
	f.nextID++
	o.ID = f.nextID
	o.CreatedAt = time.Now()
	f.rows[o.ID] = o
	return o, nil
}

func (f *fakeOvertimeRepo) GetByID(_ context.Context, id int64) (worktime.Overtime, error) {
	o, ok := f.rows[id]
	if !ok {
		return worktime.Overtime{}, worktime.ErrOvertimeNotFound
	}
	return o, nil
}

func (f *fakeOvertimeRepo) ListBySector(_ context.Context, sectorID *int64) ([]worktime.Overtime, error) {
	out := []worktime.Overtime{}
	for _, o := range f.rows {
		if sectorID != nil && (o.SectorID == nil || *o.SectorID != *sectorID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOvertimeRepo) Approve(_ context.Context, id int64, approvedBy int64) (bool, error) {
	o, ok := f.rows[id]
	if !ok || o.Approved {
		return false, nil
	}
	o.Approved = true
	o.ApprovedBy = &approvedBy
	f.rows[id] = o
	return true, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID int64) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role user.Role, _ *int64) ([]user.User, error) {
	out := []user.User{}
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type capturingDispatcher struct {
	kinds []notification.Kind
}

func (d *capturingDispatcher) Notify(_ context.Context, kind notification.Kind, _ string, target notification.Target, _ *string) error {
	if !target.Valid() {
		return notification.ErrInvalidTarget
	}
	d.kinds = append(d.kinds, kind)
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, *int64, string, map[string]interface{}) {}

func ptr(v int64) *int64 { return &v }

func newFixture() (*Service, *fakeOvertimeRepo, *fakeUserRepo, *capturingDispatcher) {
	overtime := newFakeOvertimeRepo()
	users := &fakeUserRepo{}
	dispatcher := &capturingDispatcher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(&fakeSickLeaveRepo{}, overtime, users, dispatcher, nopRecorder{}, logger)
	return svc, overtime, users, dispatcher
}

func TestApproveOvertime(t *testing.T) {
	svc, overtime, users, dispatcher := newFixture()
	ctx := context.Background()

	users.users = []user.User{{ID: 42, Username: "ana", Role: user.RoleEmployee, EmployeeID: ptr(10)}}
	entry, _ := overtime.Create(ctx, worktime.Overtime{EmployeeID: 10, Hours: 3, SectorID: ptr(3)})

	admin := auth.Actor{UserID: 1, Role: user.RoleAdmin}
	approved, err := svc.ApproveOvertime(ctx, admin, entry.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, int64(1), *approved.ApprovedBy)

	require.Len(t, dispatcher.kinds, 1)
	assert.Equal(t, notification.KindOvertimeDecided, dispatcher.kinds[0])

	// The second decision is a conflict and sends nothing.
	_, err = svc.ApproveOvertime(ctx, admin, entry.ID)
	require.ErrorIs(t, err, worktime.ErrOvertimeAlreadyApproved)
	assert.Len(t, dispatcher.kinds, 1)
}

func TestApproveOvertimeSectorScoping(t *testing.T) {
	svc, overtime, _, _ := newFixture()
	ctx := context.Background()

	entry, _ := overtime.Create(ctx, worktime.Overtime{EmployeeID: 10, Hours: 2, SectorID: ptr(3)})

	other := auth.Actor{UserID: 2, Role: user.RoleManager, SectorID: ptr(5)}
	_, err := svc.ApproveOvertime(ctx, other, entry.ID)
	require.ErrorIs(t, err, auth.ErrForbidden)

	own := auth.Actor{UserID: 2, Role: user.RoleManager, SectorID: ptr(3)}
	_, err = svc.ApproveOvertime(ctx, own, entry.ID)
	require.NoError(t, err)
}

func TestSubmitOvertimeSelfOnly(t *testing.T) {
	svc, _, _, _ := newFixture()
	ctx := context.Background()

	employee := auth.Actor{UserID: 42, Role: user.RoleEmployee, EmployeeID: ptr(10)}
	_, err := svc.SubmitOvertime(ctx, employee, worktime.CreateOvertimeRequest{
		EmployeeID: 11, Date: "2026-09-07", Hours: 2, Reason: "inventura",
	})
	require.ErrorIs(t, err, auth.ErrForbidden)

	created, err := svc.SubmitOvertime(ctx, employee, worktime.CreateOvertimeRequest{
		EmployeeID: 10, Date: "2026-09-07", Hours: 2, Reason: "inventura",
	})
	require.NoError(t, err)
	assert.False(t, created.Approved)
	assert.Equal(t, 2.0, created.Hours)
}

func TestListOvertimeVisibility(t *testing.T) {
	svc, overtime, _, _ := newFixture()
	ctx := context.Background()

	overtime.Create(ctx, worktime.Overtime{EmployeeID: 10, Hours: 1, SectorID: ptr(3)})
	overtime.Create(ctx, worktime.Overtime{EmployeeID: 20, Hours: 2, SectorID: ptr(5)})

	admin := auth.Actor{UserID: 1, Role: user.RoleAdmin}
	all, err := svc.ListOvertime(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	manager := auth.Actor{UserID: 2, Role: user.RoleManager, SectorID: ptr(3)}
	sector, err := svc.ListOvertime(ctx, manager)
	require.NoError(t, err)
	require.Len(t, sector, 1)
	assert.Equal(t, int64(10), sector[0].EmployeeID)

	employee := auth.Actor{UserID: 42, Role: user.RoleEmployee, EmployeeID: ptr(10), SectorID: ptr(3)}
	own, err := svc.ListOvertime(ctx, employee)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(10), own[0].EmployeeID)
}

func TestReportSickLeave(t *testing.T) {
	svc, _, _, _ := newFixture()
	ctx := context.Background()

	employee := auth.Actor{UserID: 42, Role: user.RoleEmployee, EmployeeID: ptr(10)}
	created, err := svc.ReportSickLeave(ctx, employee, worktime.CreateSickLeaveRequest{
		EmployeeID: 10, Start: "2026-09-07", End: "2026-09-11",
	})
	require.NoError(t, err)
	assert.Equal(t, worktime.SickLeaveStatusSubmitted, created.Status)

	_, err = svc.ReportSickLeave(ctx, employee, worktime.CreateSickLeaveRequest{
		EmployeeID: 11, Start: "2026-09-07", End: "2026-09-11",
	})
	require.ErrorIs(t, err, auth.ErrForbidden)
}
