package paystack

import "errors"

var (
	// ErrTransactionNotFound возвращается, когда Paystack не знает референс
	ErrTransactionNotFound = errors.New("paystack client: transaction not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paystack client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе или отказе Paystack
	ErrInvalidResponse = errors.New("paystack client: invalid response")

	// ErrUnauthorized возвращается при неверном секретном ключе
	ErrUnauthorized = errors.New("paystack client: unauthorized")
)
