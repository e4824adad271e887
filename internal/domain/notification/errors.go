package notification

import "errors"

var (
	ErrInvalidTarget = errors.New("notification target must be a user id or a role")
)
