package get_available_slots

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден или неактивен
	ErrMentorNotFound = errors.New("get_available_slots: mentor not found")

	// ErrInvalidDate возвращается при некорректной дате (в прошлом)
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
