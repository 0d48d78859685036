package apply_internship

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// allowedCVExtensions допустимые расширения CV и их MIME-типы
var allowedCVExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.InternshipID <= 0 {
		return fmt.Errorf("%w: internshipID must be positive", ErrInvalidInput)
	}

	if req.CoverLetter != nil && len(*req.CoverLetter) > domain.MaxCoverLetterLength {
		return fmt.Errorf("%w: coverLetter must be at most %d characters", ErrInvalidInput, domain.MaxCoverLetterLength)
	}

	return nil
}

// validateCV проверяет наличие, размер и расширение CV
// Возвращает нормализованное расширение и MIME-тип для хранилища
func validateCV(cv *File, maxSize int64) (string, string, error) {
	if cv == nil || cv.Reader == nil {
		return "", "", fmt.Errorf("%w: cv file is required", ErrInvalidCV)
	}

	if cv.Size <= 0 {
		return "", "", fmt.Errorf("%w: cv file is empty", ErrInvalidCV)
	}

	if maxSize > 0 && cv.Size > maxSize {
		return "", "", fmt.Errorf("%w: cv file must be at most %d MB", ErrInvalidCV, maxSize/(1<<20))
	}

	ext := strings.ToLower(filepath.Ext(cv.Filename))
	contentType, ok := allowedCVExtensions[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: cv must be a pdf, doc or docx file", ErrInvalidCV)
	}

	return ext, contentType, nil
}
