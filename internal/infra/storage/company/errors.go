package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company.repository: company not found")
	// ErrInvalidIndustry возвращается, когда отрасль компании не существует
	ErrInvalidIndustry = errors.New("company.repository: industry does not exist")
	// ErrInUse возвращается, когда на стажировки компании ссылаются заявки
	ErrInUse = errors.New("company.repository: company internships have applications")

	ErrBuildQuery = errors.New("company.repository: failed to build query")
	ErrExecQuery  = errors.New("company.repository: failed to execute query")
	ErrScanRow    = errors.New("company.repository: failed to scan row")
)
