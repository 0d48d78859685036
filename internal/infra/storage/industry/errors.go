package industry

import "errors"

var (
	ErrIndustryNotFound = errors.New("industry.repository: industry not found")
	ErrAlreadyExists    = errors.New("industry.repository: industry already exists")
	// ErrInUse возвращается при удалении отрасли, на которую ссылаются компании или менторы
	ErrInUse = errors.New("industry.repository: industry is referenced")

	ErrBuildQuery = errors.New("industry.repository: failed to build query")
	ErrExecQuery  = errors.New("industry.repository: failed to execute query")
	ErrScanRow    = errors.New("industry.repository: failed to scan row")
)
