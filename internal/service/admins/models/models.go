package models

import (
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// CreateAdminRequest создание администратора
type CreateAdminRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	FirstName   string  `json:"firstName" validate:"required,max=100"`
	LastName    string  `json:"lastName" validate:"max=100"`
	Role        string  `json:"role" validate:"required,oneof=admin industry_admin"`
	IndustryIDs []int64 `json:"industryIds" validate:"dive,gt=0"`
}

// UpdateIndustriesRequest замена отраслей industry_admin
type UpdateIndustriesRequest struct {
	IndustryIDs []int64 `json:"industryIds" validate:"required,min=1,dive,gt=0"`
}

// AdminResponse администратор
type AdminResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Role        string    `json:"role"`
	IndustryIDs []int64   `json:"industryIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdminListResponse список администраторов
type AdminListResponse struct {
	Admins []AdminResponse `json:"admins"`
}

// FromDomainAdmin конвертирует domain модель в DTO
func FromDomainAdmin(u *domain.User) AdminResponse {
	industries := u.IndustryIDs
	if industries == nil {
		industries = []int64{}
	}
	return AdminResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		IndustryIDs: industries,
		CreatedAt:   u.CreatedAt,
	}
}
