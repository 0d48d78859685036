package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается при нарушении уникальности активного слота ментора
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrDuplicateApplication возвращается при повторной активной заявке на стажировку
	ErrDuplicateApplication = errors.New("booking.repository: active application already exists")

	// ErrStatusConflict возвращается, когда статус бронирования изменился параллельно
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
