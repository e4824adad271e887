package schedule

import "time"

type Origin string

const (
	OriginManual Origin = "manual"
	OriginAI     Origin = "ai"
)

// Entry is the atomic scheduling fact: one employee's assignment for one
// calendar date. At most one entry exists per (employee, date); entries are
// hard-deleted when a cell is cleared.
type Entry struct {
	ID         int64
	SectorID   int64
	EmployeeID int64
	Date       time.Time // calendar date, midnight UTC
	Label      string
	Origin     Origin
}

// Outcome reports what an upsert-or-clear did to the (employee, date) pair.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeDeleted Outcome = "deleted"
	OutcomeNoop    Outcome = "noop"
)
