package analytics

import "errors"

var (
	// ErrInvalidRange возвращается для некорректного периода
	ErrInvalidRange = errors.New("invalid date range")

	// ErrAccessDenied возвращается, если пользователь не администратор
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
