package schedule

import "strings"

// LeaveLabel is the reserved shift label meaning "on approved leave".
const LeaveLabel = "GODIŠNJI"

type ShiftKind int

const (
	// ShiftEmpty means no assignment: absence of a schedule row is the
	// semantic value, there is no explicit "day off" row.
	ShiftEmpty ShiftKind = iota
	ShiftAssigned
	ShiftOnLeave
)

// ShiftValue is the parsed form of a schedule cell. Free-text sentinels are
// recognized once here, at the boundary; core logic never compares raw
// strings again.
type ShiftValue struct {
	Kind  ShiftKind
	Label string // set only for ShiftAssigned
}

func Empty() ShiftValue               { return ShiftValue{Kind: ShiftEmpty} }
func OnLeave() ShiftValue             { return ShiftValue{Kind: ShiftOnLeave} }
func Assigned(label string) ShiftValue { return ShiftValue{Kind: ShiftAssigned, Label: label} }

// ParseShiftValue normalizes a raw cell value. Empty strings and the
// case-insensitive tokens "none", "nan" and "slobodan" (free day) all mean
// "no value"; the leave sentinel maps to ShiftOnLeave; anything else is an
// assigned shift label, trimmed.
func ParseShiftValue(raw string) ShiftValue {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty()
	}
	switch strings.ToLower(s) {
	case "none", "nan", "slobodan":
		return Empty()
	}
	if strings.EqualFold(s, LeaveLabel) || strings.EqualFold(s, "godisnji") {
		return OnLeave()
	}
	return Assigned(s)
}

func (v ShiftValue) IsEmpty() bool {
	return v.Kind == ShiftEmpty
}

// StoreLabel is the label written to the schedule row for a non-empty value.
func (v ShiftValue) StoreLabel() string {
	if v.Kind == ShiftOnLeave {
		return LeaveLabel
	}
	return v.Label
}
