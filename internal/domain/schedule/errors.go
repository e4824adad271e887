package schedule

import "errors"

var (
	ErrEntryNotFound = errors.New("schedule entry not found")
	ErrInvalidDate   = errors.New("invalid schedule date")
)
