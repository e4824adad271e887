package directory

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrSectorNotFound   = errors.New("sector not found")
	ErrPositionNotFound = errors.New("position not found")
	ErrContractNotFound = errors.New("contract not found")
)
