package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is an employee-submitted request to consume leave days over a
// date range. Approved and rejected are terminal.
type Request struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Status     RequestStatus
	DecidedBy  *int64
	DecidedAt  *time.Time
	CreatedAt  time.Time

	// Joined for display
	EmployeeName *string
	SectorID     *int64
}

// Balance is the yearly entitlement and consumption counter. UsedDays is
// increased only by workflow approval, never decreased automatically.
type Balance struct {
	ID           int64
	EmployeeID   int64
	Year         int
	EntitledDays int
	UsedDays     int
}

func (b Balance) Remaining() int {
	return b.EntitledDays - b.UsedDays
}
