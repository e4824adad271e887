package leave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/leave"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/schedule"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
)

// The fakes below support snapshot/restore so the transaction runner can
// give the service real rollback semantics without a database.

type fakeRequestRepo struct {
	nextID   int64
	requests map[int64]leave.Request

	// Stand-ins for the employee join the real repository does.
	employeeNames   map[int64]string
	employeeSectors map[int64]int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests:        map[int64]leave.Request{},
		employeeNames:   map[int64]string{},
		employeeSectors: map[int64]int64{},
	}
}

func (f *fakeRequestRepo) joined(r leave.Request) leave.Request {
	if name, ok := f.employeeNames[r.EmployeeID]; ok {
		r.EmployeeName = &name
	}
	if sector, ok := f.employeeSectors[r.EmployeeID]; ok {
		r.SectorID = &sector
	}
	return r
}

func (f *fakeRequestRepo) snapshot() map[int64]leave.Request {
	out := map[int64]leave.Request{}
	for k, v := range f.requests {
		out[k] = v
	}
	return out
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return f.joined(r), nil
}

func (f *fakeRequestRepo) List(_ context.Context, status *leave.RequestStatus, sectorID *int64) ([]leave.Request, error) {
	out := []leave.Request{}
	for _, r := range f.requests {
		r = f.joined(r)
		if status != nil && r.Status != *status {
			continue
		}
		if sectorID != nil && (r.SectorID == nil || *r.SectorID != *sectorID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID int64) ([]leave.Request, error) {
	out := []leave.Request{}
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, f.joined(r))
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, from, to leave.RequestStatus, decidedBy int64, decidedAt time.Time) (bool, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	r.DecidedBy = &decidedBy
	r.DecidedAt = &decidedAt
	f.requests[id] = r
	return true, nil
}

func (f *fakeRequestRepo) ListApprovedOverlapping(_ context.Context, sectorID int64, from, to time.Time) ([]leave.Request, error) {
	out := []leave.Request{}
	for _, r := range f.requests {
		r = f.joined(r)
		if r.Status != leave.RequestStatusApproved || r.SectorID == nil || *r.SectorID != sectorID {
			continue
		}
		if !r.StartDate.After(to) && !r.EndDate.Before(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeBalanceRepo struct {
	balances map[string]leave.Balance
}

func balanceKey(employeeID int64, year int) string {
	return fmt.Sprintf("%d/%d", employeeID, year)
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: map[string]leave.Balance{}}
}

func (f *fakeBalanceRepo) snapshot() map[string]leave.Balance {
	out := map[string]leave.Balance{}
	for k, v := range f.balances {
		out[k] = v
	}
	return out
}

func (f *fakeBalanceRepo) GetByEmployeeYear(_ context.Context, employeeID int64, year int) (leave.Balance, error) {
	b, ok := f.balances[balanceKey(employeeID, year)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) AddUsed(_ context.Context, employeeID int64, year int, delta int) error {
	key := balanceKey(employeeID, year)
	b, ok := f.balances[key]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if b.UsedDays+delta > b.EntitledDays {
		return leave.ErrBalanceExceeded
	}
	b.UsedDays += delta
	f.balances[key] = b
	return nil
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

// fakeScheduleWriter records leave-day writes and can be told to fail on a
// given date to exercise mid-transaction failure.
type fakeScheduleWriter struct {
	written map[string]string // "employee/date" -> label
	failOn  *time.Time
}

func newFakeScheduleWriter() *fakeScheduleWriter {
	return &fakeScheduleWriter{written: map[string]string{}}
}

func (f *fakeScheduleWriter) snapshot() map[string]string {
	out := map[string]string{}
	for k, v := range f.written {
		out[k] = v
	}
	return out
}

func (f *fakeScheduleWriter) UpsertOrClear(_ context.Context, _ int64, employeeID int64, date time.Time, value schedule.ShiftValue, _ schedule.Origin) (schedule.Outcome, error) {
	if f.failOn != nil && date.Equal(*f.failOn) {
		return schedule.OutcomeNoop, errors.New("storage failure")
	}
	key := fmt.Sprintf("%d/%s", employeeID, date.Format("2006-01-02"))
	if value.IsEmpty() {
		delete(f.written, key)
		return schedule.OutcomeDeleted, nil
	}
	f.written[key] = value.StoreLabel()
	return schedule.OutcomeCreated, nil
}

// snapshotTxRunner copies all fake state before running fn and restores it
// when fn fails, mirroring a database rollback.
type snapshotTxRunner struct {
	requests  *fakeRequestRepo
	balances  *fakeBalanceRepo
	schedules *fakeScheduleWriter
}

func (s *snapshotTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	requests := s.requests.snapshot()
	balances := s.balances.snapshot()
	written := s.schedules.snapshot()

	if err := fn(ctx); err != nil {
		s.requests.requests = requests
		s.balances.balances = balances
		s.schedules.written = written
		return err
	}
	return nil
}

type capturedNotification struct {
	Kind   notification.Kind
	Target notification.Target
	Link   *string
}

type capturingDispatcher struct {
	sent []capturedNotification
}

func (d *capturingDispatcher) Notify(_ context.Context, kind notification.Kind, _ string, target notification.Target, link *string) error {
	if !target.Valid() {
		return notification.ErrInvalidTarget
	}
	d.sent = append(d.sent, capturedNotification{Kind: kind, Target: target, Link: link})
	return nil
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, *int64, string, map[string]interface{}) {}

type fixture struct {
	svc        *Service
	requests   *fakeRequestRepo
	balances   *fakeBalanceRepo
	users      *fakeUserRepo
	schedules  *fakeScheduleWriter
	dispatcher *capturingDispatcher
}

func newFixture() *fixture {
	requests := newFakeRequestRepo()
	balances := newFakeBalanceRepo()
	schedules := newFakeScheduleWriter()
	users := &fakeUserRepo{}
	dispatcher := &capturingDispatcher{}
	tx := &snapshotTxRunner{requests: requests, balances: balances, schedules: schedules}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		svc:        NewService(requests, balances, users, schedules, tx, dispatcher, nopRecorder{}, logger),
		requests:   requests,
		balances:   balances,
		users:      users,
		schedules:  schedules,
		dispatcher: dispatcher,
	}
}

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

// Approval charges the clock year's ledger row, so the fixtures date their
// requests relative to it.
var thisYear = time.Now().Year()

func inYear(year int, monthDay string) string {
	return fmt.Sprintf("%d-%s", year, monthDay)
}

func ptr(v int64) *int64 { return &v }

func (f *fixture) seedPendingRequest(employeeID, sectorID int64, start, end string, days int) int64 {
	f.requests.employeeNames[employeeID] = "Ana Horvat"
	f.requests.employeeSectors[employeeID] = sectorID
	created, _ := f.requests.Create(context.Background(), leave.Request{
		EmployeeID: employeeID,
		StartDate:  day(start),
		EndDate:    day(end),
		Days:       days,
		Status:     leave.RequestStatusPending,
	})
	return created.ID
}

func adminActor() auth.Actor {
	return auth.Actor{UserID: 1, Role: user.RoleAdmin}
}

func TestApproveWritesStatusBalanceAndSchedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24, UsedDays: 5}
	f.users.users = []user.User{{ID: 42, Username: "ana", Role: user.RoleEmployee, EmployeeID: ptr(10)}}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-09"), 3)

	result, err := f.svc.Approve(ctx, adminActor(), id)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusApproved, result.Status)

	stored, _ := f.requests.GetByID(ctx, id)
	assert.Equal(t, leave.RequestStatusApproved, stored.Status)

	balance, _ := f.balances.GetByEmployeeYear(ctx, 10, thisYear)
	assert.Equal(t, 8, balance.UsedDays)

	// Every day of the range became a leave entry.
	require.Len(t, f.schedules.written, 3)
	for _, d := range []string{inYear(thisYear, "09-07"), inYear(thisYear, "09-08"), inYear(thisYear, "09-09")} {
		assert.Equal(t, schedule.LeaveLabel, f.schedules.written[fmt.Sprintf("10/%s", d)])
	}

	// The employee's account was told, pointing at the schedule.
	require.Len(t, f.dispatcher.sent, 1)
	sent := f.dispatcher.sent[0]
	assert.Equal(t, notification.KindLeaveApproved, sent.Kind)
	require.NotNil(t, sent.Target.UserID)
	assert.Equal(t, int64(42), *sent.Target.UserID)
	require.NotNil(t, sent.Link)
	assert.Equal(t, "schedule", *sent.Link)
}

func TestApproveRollsBackOnMidRangeFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24, UsedDays: 5}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-09"), 3)

	failOn := day(inYear(thisYear, "09-08"))
	f.schedules.failOn = &failOn

	_, err := f.svc.Approve(ctx, adminActor(), id)
	require.Error(t, err)

	// Nothing stuck: status, balance and schedule all back where they were.
	stored, _ := f.requests.GetByID(ctx, id)
	assert.Equal(t, leave.RequestStatusPending, stored.Status)
	balance, _ := f.balances.GetByEmployeeYear(ctx, 10, thisYear)
	assert.Equal(t, 5, balance.UsedDays)
	assert.Empty(t, f.schedules.written)
	assert.Empty(t, f.dispatcher.sent)
}

func TestApproveTwiceIsConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-07"), 1)

	_, err := f.svc.Approve(ctx, adminActor(), id)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, adminActor(), id)
	require.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)

	// The balance was charged exactly once.
	balance, _ := f.balances.GetByEmployeeYear(ctx, 10, thisYear)
	assert.Equal(t, 1, balance.UsedDays)
}

func TestApproveChargesClockYearLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// The request is dated in a past year; the charge still lands on the
	// current year's row, the only one seeded.
	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24}
	id := f.seedPendingRequest(10, 3, inYear(thisYear-1, "12-29"), inYear(thisYear-1, "12-31"), 3)

	_, err := f.svc.Approve(ctx, adminActor(), id)
	require.NoError(t, err)

	balance, _ := f.balances.GetByEmployeeYear(ctx, 10, thisYear)
	assert.Equal(t, 3, balance.UsedDays)
	_, err = f.balances.GetByEmployeeYear(ctx, 10, thisYear-1)
	require.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestApproveBalanceExceededRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24, UsedDays: 23}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-09"), 3)

	_, err := f.svc.Approve(ctx, adminActor(), id)
	require.ErrorIs(t, err, leave.ErrBalanceExceeded)

	stored, _ := f.requests.GetByID(ctx, id)
	assert.Equal(t, leave.RequestStatusPending, stored.Status)
	balance, _ := f.balances.GetByEmployeeYear(ctx, 10, thisYear)
	assert.Equal(t, 23, balance.UsedDays)
}

func TestApproveSectorScoping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-07"), 1)

	otherSector := auth.Actor{UserID: 2, Role: user.RoleManager, SectorID: ptr(5)}
	_, err := f.svc.Approve(ctx, otherSector, id)
	require.ErrorIs(t, err, auth.ErrForbidden)

	ownSector := auth.Actor{UserID: 2, Role: user.RoleManager, SectorID: ptr(3)}
	_, err = f.svc.Approve(ctx, ownSector, id)
	require.NoError(t, err)
}

func TestApproveWithoutEmployeeAccountStillSucceeds(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-07"), 1)

	result, err := f.svc.Approve(ctx, adminActor(), id)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusApproved, result.Status)
	// No account, no notification, no error.
	assert.Empty(t, f.dispatcher.sent)
}

func TestRejectLeavesBalanceAndScheduleAlone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.balances.balances[balanceKey(10, thisYear)] = leave.Balance{EmployeeID: 10, Year: thisYear, EntitledDays: 24, UsedDays: 5}
	f.users.users = []user.User{{ID: 42, Username: "ana", Role: user.RoleEmployee, EmployeeID: ptr(10)}}
	id := f.seedPendingRequest(10, 3, inYear(thisYear, "09-07"), inYear(thisYear, "09-09"), 3)

	result, err := f.svc.Reject(ctx, adminActor(), id)
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusRejected, result.Status)

	balance, _ := f.balances.GetByEmployeeYear(ctx, 10, thisYear)
	assert.Equal(t, 5, balance.UsedDays)
	assert.Empty(t, f.schedules.written)

	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, notification.KindLeaveRejected, f.dispatcher.sent[0].Kind)

	// Approving a rejected request is a conflict.
	_, err = f.svc.Approve(ctx, adminActor(), id)
	require.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)
}

func TestSubmitNotifiesManagersAndAdmins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.requests.employeeNames[10] = "Ana Horvat"
	f.requests.employeeSectors[10] = 3

	employee := auth.Actor{UserID: 42, Role: user.RoleEmployee, EmployeeID: ptr(10), SectorID: ptr(3)}
	result, err := f.svc.Submit(ctx, employee, leave.SubmitRequest{
		EmployeeID: 10,
		StartDate:  inYear(thisYear, "09-07"),
		EndDate:    inYear(thisYear, "09-09"),
		Days:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusPending, result.Status)

	require.Len(t, f.dispatcher.sent, 2)
	managerNote := f.dispatcher.sent[0]
	require.NotNil(t, managerNote.Target.Role)
	assert.Equal(t, user.RoleManager, *managerNote.Target.Role)
	require.NotNil(t, managerNote.Target.SectorID)
	assert.Equal(t, int64(3), *managerNote.Target.SectorID)

	adminNote := f.dispatcher.sent[1]
	require.NotNil(t, adminNote.Target.Role)
	assert.Equal(t, user.RoleAdmin, *adminNote.Target.Role)
	assert.Nil(t, adminNote.Target.SectorID)
}

func TestSubmitForAnotherEmployeeForbidden(t *testing.T) {
	f := newFixture()

	employee := auth.Actor{UserID: 42, Role: user.RoleEmployee, EmployeeID: ptr(10)}
	_, err := f.svc.Submit(context.Background(), employee, leave.SubmitRequest{
		EmployeeID: 11,
		StartDate:  inYear(thisYear, "09-07"),
		EndDate:    inYear(thisYear, "09-07"),
		Days:       1,
	})
	require.ErrorIs(t, err, auth.ErrForbidden)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), adminActor(), leave.SubmitRequest{
		EmployeeID: 10,
		StartDate:  inYear(thisYear, "09-09"),
		EndDate:    inYear(thisYear, "09-07"),
		Days:       3,
	})
	require.Error(t, err)
}
