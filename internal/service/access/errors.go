package access

import "errors"

var (
	// ErrUnknownUser возвращается, когда пользователь из токена не найден
	ErrUnknownUser = errors.New("access: unknown user")

	// ErrRoleRevoked возвращается, когда у пользователя больше нет прав администратора
	ErrRoleRevoked = errors.New("access: admin role revoked")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("access: internal error")
)
