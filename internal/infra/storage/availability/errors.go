package availability

import "errors"

var (
	ErrBuildQuery = errors.New("availability.repository: failed to build query")
	ErrExecQuery  = errors.New("availability.repository: failed to execute query")
	ErrScanRow    = errors.New("availability.repository: failed to scan row")
)
