package models

import (
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// Request модели

// RegisterRequest регистрация студента
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// LoginRequest вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest подтверждение кода
type VerifyOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
	Purpose string `json:"purpose" validate:"required,oneof=login verify_email"`
}

// ResendOTPRequest повторная отправка кода
type ResendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=login verify_email reset_password"`
}

// ForgotPasswordRequest запрос кода для сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest установка нового пароля по коду
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// Response модели

// UserResponse данные пользователя
type UserResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         *string   `json:"phone,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	IndustryIDs   []int64   `json:"industryIds,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OTPResponse ответ об отправке кода
type OTPResponse struct {
	OTPRequired bool      `json:"otpRequired"`
	Purpose     string    `json:"purpose"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// AuthResponse выданный access токен
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// MessageResponse нейтральный ответ без данных
type MessageResponse struct {
	Message string `json:"message"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
		IndustryIDs:   u.IndustryIDs,
		CreatedAt:     u.CreatedAt,
	}
}
