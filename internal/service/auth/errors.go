package auth

import "errors"

var (
	// ErrEmailTaken возвращается при регистрации на занятый email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidOTP возвращается при неверном коде
	ErrInvalidOTP = errors.New("invalid verification code")

	// ErrOTPExpired возвращается, когда код истек или уже использован
	ErrOTPExpired = errors.New("verification code expired or already used")

	// ErrOTPAttemptsExceeded возвращается после исчерпания попыток ввода
	ErrOTPAttemptsExceeded = errors.New("too many invalid attempts, request a new code")

	// ErrOTPTooSoon возвращается при повторной отправке раньше интервала
	ErrOTPTooSoon = errors.New("verification code was sent recently")

	// ErrTooManyRequests возвращается при превышении лимита отправок
	ErrTooManyRequests = errors.New("too many verification codes requested")

	// ErrWeakPassword возвращается для пароля, не прошедшего политику
	ErrWeakPassword = errors.New("password must be 8 to 72 characters long")

	// ErrInvalidPurpose возвращается для неизвестного назначения кода
	ErrInvalidPurpose = errors.New("invalid verification purpose")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrMailDelivery возвращается, когда письмо с кодом не отправлено
	ErrMailDelivery = errors.New("failed to deliver verification code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
