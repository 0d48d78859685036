package domain

import "time"

// Industry отрасль (IT, финансы, медицина ...)
type Industry struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Company компания, публикующая стажировки
type Company struct {
	ID          int64
	IndustryID  int64
	Name        string
	Description string
	Website     *string
	Location    *string
	LogoKey     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Internship вакансия стажировки
type Internship struct {
	ID          int64
	CompanyID   int64
	IndustryID  int64 // денормализовано из компании
	CompanyName string
	Title       string
	Description string
	Location    *string
	Duration    *string // "3 months"
	Stipend     *string
	Deadline    *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen returns true if the internship accepts applications at the given moment
func (i *Internship) IsOpen(now time.Time) bool {
	if !i.IsActive {
		return false
	}
	if i.Deadline == nil {
		return true
	}
	deadline := time.Date(i.Deadline.Year(), i.Deadline.Month(), i.Deadline.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !deadline.Before(today)
}

// InternshipsFilter фильтр публичного списка стажировок
type InternshipsFilter struct {
	IndustryID *int64
	CompanyID  *int64
	Query      string
	OpenOnly   bool
	Today      time.Time
	Limit      uint64
	Offset     uint64
}
