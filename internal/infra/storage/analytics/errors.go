package analytics

import "errors"

var (
	ErrBuildQuery = errors.New("analytics.repository: failed to build query")
	ErrExecQuery  = errors.New("analytics.repository: failed to execute query")
	ErrScanRow    = errors.New("analytics.repository: failed to scan row")
)
