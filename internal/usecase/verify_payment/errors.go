package verify_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда референс не привязан к бронированию
	ErrBookingNotFound = errors.New("verify_payment: booking not found")

	// ErrPaymentNotSuccessful возвращается для неуспешной или неполной оплаты
	ErrPaymentNotSuccessful = errors.New("verify_payment: payment was not successful")

	// ErrPaymentNotAllowed возвращается, когда бронирование больше не ожидает оплаты
	ErrPaymentNotAllowed = errors.New("verify_payment: booking is not awaiting payment")

	// ErrInvalidSignature возвращается при неверной подписи вебхука
	ErrInvalidSignature = errors.New("verify_payment: invalid webhook signature")

	// ErrPaymentProvider возвращается при ошибке платежного шлюза
	ErrPaymentProvider = errors.New("verify_payment: payment provider error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_payment: internal error")
)
