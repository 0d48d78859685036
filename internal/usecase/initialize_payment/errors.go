package initialize_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("initialize_payment: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("initialize_payment: access denied")

	// ErrAlreadyPaid возвращается для уже оплаченного бронирования
	ErrAlreadyPaid = errors.New("initialize_payment: booking is already paid")

	// ErrPaymentNotAllowed возвращается, когда бронирование не ожидает оплаты
	ErrPaymentNotAllowed = errors.New("initialize_payment: booking does not require payment")

	// ErrPaymentProvider возвращается при ошибке платежного шлюза
	ErrPaymentProvider = errors.New("initialize_payment: payment provider error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("initialize_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("initialize_payment: internal error")
)
