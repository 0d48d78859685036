package book_session

import "errors"

var (
	// ErrMentorNotFound возвращается, когда ментор не найден или неактивен
	ErrMentorNotFound = errors.New("book_session: mentor not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("book_session: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("book_session: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом ментора
	ErrInvalidTimeSlot = errors.New("book_session: invalid time slot")

	// ErrTooLateToBook возвращается, когда нарушается minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("book_session: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот уже занят
	ErrSlotNotAvailable = errors.New("book_session: slot is not available")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть активная сессия с ментором на эту дату
	ErrDuplicateBooking = errors.New("book_session: user already has a session with this mentor on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_session: internal error")
)
