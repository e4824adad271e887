package directory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

// Employee is read-only reference data for the scheduling core; it is
// mutated only through explicit admin edits outside workflow operations.
type Employee struct {
	ID              int64
	FirstName       string
	LastName        string
	OIB             string
	Address         *string
	Phone           *string
	Email           *string
	Status          EmploymentStatus
	SectorID        *int64
	PositionID      *int64
	HireDate        time.Time
	TerminationDate *time.Time

	// Joined for display and AI prompts
	PositionName *string
}

// FullName is "First Last", the form used for AI roster matching.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Sector struct {
	ID   int64
	Name string
}

type Position struct {
	ID       int64
	SectorID int64
	Name     string
}

// PositionRank orders positions for display and AI prompts: leads first,
// line staff next, assistants and students after, anything unknown last.
func PositionRank(name string) int {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "direktor"), strings.Contains(n, "manager"),
		strings.Contains(n, "voditelj"), strings.Contains(n, "chef"),
		strings.Contains(n, "maître"):
		return 1
	case strings.Contains(n, "recepcioner"), strings.Contains(n, "kuhar"),
		strings.Contains(n, "konobar"), strings.Contains(n, "terapeut"):
		return 2
	case strings.Contains(n, "pomoćni"), strings.Contains(n, "student"):
		return 3
	default:
		return 4
	}
}

// SortByPositionRank orders employees the way the schedule grid and AI
// prompts present them: by position rank, then last name.
func SortByPositionRank(employees []Employee) {
	sort.SliceStable(employees, func(i, j int) bool {
		var ni, nj string
		if employees[i].PositionName != nil {
			ni = *employees[i].PositionName
		}
		if employees[j].PositionName != nil {
			nj = *employees[j].PositionName
		}
		ri, rj := PositionRank(ni), PositionRank(nj)
		if ri != rj {
			return ri < rj
		}
		return employees[i].LastName < employees[j].LastName
	})
}

// ShiftTemplate is a sector's named working window, e.g. "Jutarnja" 07:00-15:00.
type ShiftTemplate struct {
	ID       int64
	SectorID int64
	Name     string
	Start    string // "HH:MM"
	End      string // "HH:MM"
}

// Label is the time-range token used in schedule cells and AI prompts.
func (t ShiftTemplate) Label() string {
	return fmt.Sprintf("%s-%s", t.Start, t.End)
}

type Contract struct {
	ID         int64
	EmployeeID int64
	Type       string
	Start      time.Time
	End        *time.Time
	Gross      decimal.Decimal
	Net        decimal.Decimal
	CreatedAt  time.Time
}

type EventStatus string

const (
	EventStatusPlanned   EventStatus = "planned"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event is an upcoming hotel happening that the AI scheduler takes into
// account when drafting a week.
type Event struct {
	ID          int64
	Name        string
	Type        string
	Start       time.Time
	End         time.Time
	Description *string
	Status      EventStatus
}
