package catalog

import "errors"

var (
	// ErrIndustryNotFound возвращается, когда отрасль не найдена
	ErrIndustryNotFound = errors.New("industry not found")

	// ErrIndustryExists возвращается при дублировании названия отрасли
	ErrIndustryExists = errors.New("industry with this name already exists")

	// ErrIndustryInUse возвращается при удалении отрасли, на которую есть ссылки
	ErrIndustryInUse = errors.New("industry is used by companies, mentors or bookings")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrCompanyInUse возвращается при удалении компании, на стажировки которой есть заявки
	ErrCompanyInUse = errors.New("company has internships with applications")

	// ErrInternshipNotFound возвращается, когда стажировка не найдена
	ErrInternshipNotFound = errors.New("internship not found")

	// ErrInternshipInUse возвращается при удалении стажировки с заявками
	ErrInternshipInUse = errors.New("internship has applications, deactivate it instead")

	// ErrInvalidImage возвращается для неподходящего логотипа
	ErrInvalidImage = errors.New("invalid image file")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
