package mentor

import "errors"

var (
	ErrMentorNotFound  = errors.New("mentor.repository: mentor not found")
	ErrInvalidIndustry = errors.New("mentor.repository: industry does not exist")
	// ErrInUse возвращается при удалении ментора, у которого есть бронирования
	ErrInUse = errors.New("mentor.repository: mentor has bookings")

	ErrBuildQuery = errors.New("mentor.repository: failed to build query")
	ErrExecQuery  = errors.New("mentor.repository: failed to execute query")
	ErrScanRow    = errors.New("mentor.repository: failed to scan row")
)
