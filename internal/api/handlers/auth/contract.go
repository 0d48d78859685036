package auth

import (
	"context"

	"github.com/m04kA/InternHub-Service/internal/service/auth/models"
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.OTPResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.OTPResponse, error)
	VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error)
	ResendOTP(ctx context.Context, req *models.ResendOTPRequest) (*models.OTPResponse, error)
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.MessageResponse, error)
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) (*models.MessageResponse, error)
	GetMe(ctx context.Context, userID int64) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
