package mentors

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден
	ErrMentorNotFound = errors.New("mentor not found")

	// ErrIndustryNotFound возвращается для несуществующей отрасли
	ErrIndustryNotFound = errors.New("industry not found")

	// ErrAccessDenied возвращается, если отрасль ментора вне зоны администратора
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidAvailability возвращается для некорректного расписания
	ErrInvalidAvailability = errors.New("invalid availability")

	// ErrInvalidImage возвращается для неподходящего фото
	ErrInvalidImage = errors.New("invalid image file")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
