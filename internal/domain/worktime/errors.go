package worktime

import "errors"

var (
	ErrOvertimeNotFound        = errors.New("overtime entry not found")
	ErrOvertimeAlreadyApproved = errors.New("overtime entry already approved")
	ErrSickLeaveNotFound       = errors.New("sick leave record not found")
)
