package leave

import "errors"

var (
	ErrRequestNotFound         = errors.New("leave request not found")
	ErrRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrBalanceNotFound         = errors.New("leave balance not found")
	ErrBalanceExceeded         = errors.New("leave balance exceeded")
)
