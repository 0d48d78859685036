package otp

import "errors"

var (
	// ErrCodeNotFound возвращается, когда код не выдавался, истек или уже использован
	ErrCodeNotFound = errors.New("otp.store: code not found")

	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("otp.store: redis error")
)
