package apply_internship

import (
	"io"
	"time"
)

// Request модель заявки на стажировку
type Request struct {
	UserID       int64
	InternshipID int64
	CoverLetter  *string
	CV           *File
}

// File загруженный файл CV
type File struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// Config ограничения загрузки
type Config struct {
	MaxCVSizeBytes int64
	Currency       string
	Location       *time.Location
}
