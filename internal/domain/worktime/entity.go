package worktime

import "time"

type SickLeaveStatus string

const (
	SickLeaveStatusSubmitted SickLeaveStatus = "submitted"
	SickLeaveStatusClosed    SickLeaveStatus = "closed"
)

// SickLeave is a date-ranged absence record; it feeds the AI scheduler's
// absence windows alongside approved leave.
type SickLeave struct {
	ID         int64
	EmployeeID int64
	Start      time.Time
	End        time.Time
	Status     SickLeaveStatus
	CreatedAt  time.Time

	EmployeeName *string
}

// Overtime is a per-day extra-hours entry pending admin or manager approval.
type Overtime struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	Hours      float64
	Reason     string
	Approved   bool
	ApprovedBy *int64
	CreatedAt  time.Time

	EmployeeName *string
	SectorID     *int64
}
