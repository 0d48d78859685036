package admins

import "errors"

var (
	// ErrAdminNotFound возвращается, когда администратор не найден
	ErrAdminNotFound = errors.New("admin not found")

	// ErrEmailTaken возвращается при создании администратора на занятый email
	ErrEmailTaken = errors.New("email is already registered")

	// ErrIndustriesRequired возвращается для industry_admin без отраслей
	ErrIndustriesRequired = errors.New("industry admin needs at least one industry")

	// ErrUnknownIndustry возвращается, если одна из отраслей не существует
	ErrUnknownIndustry = errors.New("one or more industries do not exist")

	// ErrNotIndustryAdmin возвращается при назначении отраслей не industry_admin
	ErrNotIndustryAdmin = errors.New("industries can only be assigned to industry admins")

	// ErrCannotDeleteSelf возвращается при попытке удалить собственную учетную запись
	ErrCannotDeleteSelf = errors.New("admins cannot delete themselves")

	// ErrWeakPassword возвращается для пароля, не прошедшего политику
	ErrWeakPassword = errors.New("password must be 8 to 72 characters long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
