package internship

import "errors"

var (
	ErrInternshipNotFound = errors.New("internship.repository: internship not found")
	ErrInvalidCompany     = errors.New("internship.repository: company does not exist")
	// ErrInUse возвращается при удалении стажировки, на которую ссылаются заявки
	ErrInUse = errors.New("internship.repository: internship has applications")

	ErrBuildQuery = errors.New("internship.repository: failed to build query")
	ErrExecQuery  = errors.New("internship.repository: failed to execute query")
	ErrScanRow    = errors.New("internship.repository: failed to scan row")
)
