package expire_bookings

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("expire_bookings: internal error")
