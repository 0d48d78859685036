package apply_internship

import "errors"

var (
	// ErrInternshipNotFound возвращается, когда стажировка не найдена
	ErrInternshipNotFound = errors.New("apply_internship: internship not found")

	// ErrInternshipClosed возвращается, когда стажировка неактивна или дедлайн прошел
	ErrInternshipClosed = errors.New("apply_internship: internship is closed")

	// ErrInvalidCV возвращается при отсутствии CV, неверном формате или размере
	ErrInvalidCV = errors.New("apply_internship: invalid CV file")

	// ErrAlreadyApplied возвращается при повторной активной заявке
	ErrAlreadyApplied = errors.New("apply_internship: already applied to this internship")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_internship: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_internship: internal error")
)
