package models

import (
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// Request модели

// CreateIndustryRequest создание отрасли
type CreateIndustryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CompanyRequest создание или обновление компании (поля multipart формы)
type CompanyRequest struct {
	IndustryID  int64   `json:"industryId" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=5000"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url,max=255"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	RemoveLogo  bool    `json:"removeLogo"`
}

// InternshipRequest создание или обновление стажировки
type InternshipRequest struct {
	CompanyID   int64   `json:"companyId" validate:"required,gt=0"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required,max=10000"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Duration    *string `json:"duration,omitempty" validate:"omitempty,max=100"`
	Stipend     *string `json:"stipend,omitempty" validate:"omitempty,max=100"`
	Deadline    *string `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ListInternshipsRequest фильтры публичного списка
type ListInternshipsRequest struct {
	IndustryID *int64
	CompanyID  *int64
	Query      string
	OpenOnly   bool
	Limit      uint64
	Offset     uint64
}

// Response модели

// IndustryResponse отрасль
type IndustryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// IndustryListResponse список отраслей
type IndustryListResponse struct {
	Industries []IndustryResponse `json:"industries"`
}

// CompanyResponse компания
type CompanyResponse struct {
	ID          int64     `json:"id"`
	IndustryID  int64     `json:"industryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Website     *string   `json:"website,omitempty"`
	Location    *string   `json:"location,omitempty"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanyListResponse список компаний
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// InternshipResponse стажировка
type InternshipResponse struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyId"`
	CompanyName string    `json:"companyName"`
	IndustryID  int64     `json:"industryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    *string   `json:"location,omitempty"`
	Duration    *string   `json:"duration,omitempty"`
	Stipend     *string   `json:"stipend,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	IsActive    bool      `json:"isActive"`
	IsOpen      bool      `json:"isOpen"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InternshipPageResponse страница стажировок
type InternshipPageResponse struct {
	Internships []InternshipResponse `json:"internships"`
	Total       int64                `json:"total"`
	Limit       uint64               `json:"limit"`
	Offset      uint64               `json:"offset"`
}

// Конвертеры

// FromDomainIndustry конвертирует domain модель в DTO
func FromDomainIndustry(i *domain.Industry) IndustryResponse {
	return IndustryResponse{ID: i.ID, Name: i.Name, CreatedAt: i.CreatedAt}
}

// FromDomainIndustryList конвертирует список отраслей
func FromDomainIndustryList(items []*domain.Industry) *IndustryListResponse {
	result := make([]IndustryResponse, 0, len(items))
	for _, i := range items {
		result = append(result, FromDomainIndustry(i))
	}
	return &IndustryListResponse{Industries: result}
}

// FromDomainCompany конвертирует компанию, logoURL вычисляется сервисом
func FromDomainCompany(c *domain.Company, logoURL *string) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		IndustryID:  c.IndustryID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Location:    c.Location,
		LogoURL:     logoURL,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainInternship конвертирует стажировку, now нужен для вычисления IsOpen
func FromDomainInternship(in *domain.Internship, now time.Time) InternshipResponse {
	resp := InternshipResponse{
		ID:          in.ID,
		CompanyID:   in.CompanyID,
		CompanyName: in.CompanyName,
		IndustryID:  in.IndustryID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Duration:    in.Duration,
		Stipend:     in.Stipend,
		IsActive:    in.IsActive,
		IsOpen:      in.IsOpen(now),
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	if in.Deadline != nil {
		d := in.Deadline.Format(domain.DateFormat)
		resp.Deadline = &d
	}
	return resp
}

// FromDomainInternshipPage конвертирует страницу стажировок
func FromDomainInternshipPage(items []*domain.Internship, total int64, limit, offset uint64, now time.Time) *InternshipPageResponse {
	result := make([]InternshipResponse, 0, len(items))
	for _, in := range items {
		result = append(result, FromDomainInternship(in, now))
	}
	return &InternshipPageResponse{
		Internships: result,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}
}
