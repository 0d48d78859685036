package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/otp"
	userRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/user"
	"github.com/m04kA/InternHub-Service/internal/integrations/mailer"
	"github.com/m04kA/InternHub-Service/internal/service/auth/models"
	"github.com/m04kA/InternHub-Service/pkg/password"
)

const (
	TokenType = "Bearer"

	// ForgotPasswordMessage одинаковый ответ для существующих и неизвестных email
	ForgotPasswordMessage = "If the email is registered, a reset code has been sent"
)

// Config параметры одноразовых кодов
type Config struct {
	OTPTTL         time.Duration
	MaxAttempts    int
	ResendInterval time.Duration
}

// CodeGenerator генерирует одноразовый код
type CodeGenerator func() (string, error)

type Service struct {
	userRepo  UserRepository
	otpStore  OTPStore
	limiter   RateLimiter
	hasher    PasswordHasher
	tokens    TokenIssuer
	mailer    Mailer
	metrics   Metrics
	config    Config
	logger    Logger
	now       func() time.Time
	generate  CodeGenerator
	dummyHash string
}

// NewService создает сервис аутентификации
func NewService(
	userRepo UserRepository,
	otpStore OTPStore,
	limiter RateLimiter,
	hasher PasswordHasher,
	tokens TokenIssuer,
	mail Mailer,
	metrics Metrics,
	config Config,
	logger Logger,
) *Service {
	dummy, err := hasher.Hash("internhub-dummy-password")
	if err != nil {
		dummy = ""
	}

	return &Service{
		userRepo:  userRepo,
		otpStore:  otpStore,
		limiter:   limiter,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mail,
		metrics:   metrics,
		config:    config,
		logger:    logger,
		now:       time.Now,
		generate:  GenerateCode,
		dummyHash: dummy,
	}
}

// WithCodeGenerator подменяет генератор кодов (для тестов)
func (s *Service) WithCodeGenerator(gen CodeGenerator) *Service {
	s.generate = gen
	return s
}

// WithClock подменяет источник времени (для тестов)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register регистрирует студента и отправляет код подтверждения email
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.OTPResponse, error) {
	email := NormalizeEmail(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if email == "" || firstName == "" {
		return nil, ErrInvalidInput
	}

	if err := password.Validate(req.Password); err != nil {
		return nil, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register: %w", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        req.Phone,
		Role:         domain.RoleStudent,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: failed to create user: %v", err)
		return nil, fmt.Errorf("%w: Register: %w", ErrInternal, err)
	}

	s.logger.Info("Register: student registered id=%d", user.ID)

	// Письмо можно запросить повторно через resend
	resp, err := s.sendOTP(ctx, user, domain.OTPPurposeVerifyEmail)
	if err != nil {
		s.logger.Warn("Register: verification code not sent user=%d: %v", user.ID, err)
		return &models.OTPResponse{OTPRequired: true, Purpose: string(domain.OTPPurposeVerifyEmail)}, nil
	}

	return resp, nil
}

// Login проверяет пароль и отправляет код второго шага
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.OTPResponse, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			// Сравнение с фиктивным хешем выравнивает время ответа
			_ = s.hasher.Compare(s.dummyHash, req.Password)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get user: %v", err)
		return nil, fmt.Errorf("%w: Login: %w", ErrInternal, err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.logger.Warn("Login: invalid password user=%d", user.ID)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to compare password user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login: %w", ErrInternal, err)
	}

	purpose := domain.OTPPurposeLogin
	if !user.EmailVerified {
		purpose = domain.OTPPurposeVerifyEmail
	}

	return s.sendOTP(ctx, user, purpose)
}

// VerifyOTP проверяет код входа или подтверждения email и выдает токен
func (s *Service) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error) {
	purpose := domain.OTPPurpose(req.Purpose)
	if !purpose.IssuesToken() {
		return nil, ErrInvalidPurpose
	}

	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrOTPExpired
		}
		s.logger.Error("VerifyOTP: failed to get user: %v", err)
		return nil, fmt.Errorf("%w: VerifyOTP: %w", ErrInternal, err)
	}

	if err := s.checkCode(ctx, purpose, email, req.Code); err != nil {
		s.logger.Warn("VerifyOTP: code rejected user=%d purpose=%s: %v", user.ID, purpose, err)
		return nil, err
	}

	if !user.EmailVerified {
		if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
			s.logger.Error("VerifyOTP: failed to mark email verified user=%d: %v", user.ID, err)
			return nil, fmt.Errorf("%w: VerifyOTP: %w", ErrInternal, err)
		}
		user.EmailVerified = true
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("VerifyOTP: failed to issue token user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: VerifyOTP: %w", ErrInternal, err)
	}

	s.logger.Info("VerifyOTP: user logged in id=%d role=%s", user.ID, user.Role)

	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresAt:   expiresAt,
		User:        models.FromDomainUser(user),
	}, nil
}

// ResendOTP повторно отправляет код. Для неизвестного email ответ тот же.
// Код входа переотправляется только при незавершенном входе по паролю
func (s *Service) ResendOTP(ctx context.Context, req *models.ResendOTPRequest) (*models.OTPResponse, error) {
	purpose := domain.OTPPurpose(req.Purpose)
	if !purpose.IsValid() {
		return nil, ErrInvalidPurpose
	}

	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return s.blindResponse(purpose), nil
		}
		s.logger.Error("ResendOTP: failed to get user: %v", err)
		return nil, fmt.Errorf("%w: ResendOTP: %w", ErrInternal, err)
	}

	if purpose == domain.OTPPurposeVerifyEmail && user.EmailVerified {
		return s.blindResponse(purpose), nil
	}

	if purpose == domain.OTPPurposeLogin {
		if _, err := s.otpStore.TTL(ctx, string(purpose), user.Email); err != nil {
			if errors.Is(err, otp.ErrCodeNotFound) {
				s.logger.Warn("ResendOTP: no pending login for user=%d", user.ID)
				return s.blindResponse(purpose), nil
			}
			s.logger.Error("ResendOTP: failed to check pending login user=%d: %v", user.ID, err)
			return nil, fmt.Errorf("%w: ResendOTP: %w", ErrInternal, err)
		}
	}

	return s.sendOTP(ctx, user, purpose)
}

// ForgotPassword отправляет код сброса пароля, не раскрывая наличие аккаунта
func (s *Service) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) (*models.MessageResponse, error) {
	email := NormalizeEmail(req.Email)
	resp := &models.MessageResponse{Message: ForgotPasswordMessage}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return resp, nil
		}
		s.logger.Error("ForgotPassword: failed to get user: %v", err)
		return nil, fmt.Errorf("%w: ForgotPassword: %w", ErrInternal, err)
	}

	if _, err := s.sendOTP(ctx, user, domain.OTPPurposeResetPassword); err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Warn("ForgotPassword: reset code not sent user=%d: %v", user.ID, err)
	}

	return resp, nil
}

// ResetPassword устанавливает новый пароль по коду сброса
func (s *Service) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) (*models.MessageResponse, error) {
	if err := password.Validate(req.NewPassword); err != nil {
		return nil, ErrWeakPassword
	}

	email := NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrOTPExpired
		}
		s.logger.Error("ResetPassword: failed to get user: %v", err)
		return nil, fmt.Errorf("%w: ResetPassword: %w", ErrInternal, err)
	}

	if err := s.checkCode(ctx, domain.OTPPurposeResetPassword, email, req.Code); err != nil {
		s.logger.Warn("ResetPassword: code rejected user=%d: %v", user.ID, err)
		return nil, err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		s.logger.Error("ResetPassword: failed to hash password user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: ResetPassword: %w", ErrInternal, err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.logger.Error("ResetPassword: failed to update password user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: ResetPassword: %w", ErrInternal, err)
	}

	// Код пришел на этот email, значит адрес подтвержден
	if !user.EmailVerified {
		if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
			s.logger.Warn("ResetPassword: failed to mark email verified user=%d: %v", user.ID, err)
		}
	}

	s.logger.Info("ResetPassword: password changed user=%d", user.ID)

	return &models.MessageResponse{Message: "Password has been reset"}, nil
}

// GetMe возвращает профиль текущего пользователя
func (s *Service) GetMe(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetMe: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMe: %w", ErrInternal, err)
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

func (s *Service) checkCode(ctx context.Context, purpose domain.OTPPurpose, email, code string) error {
	result, err := s.otpStore.Verify(ctx, string(purpose), email, HashCode(email, code), s.config.MaxAttempts)
	if err != nil {
		return fmt.Errorf("%w: verify code: %w", ErrInternal, err)
	}

	switch result {
	case otp.VerifyOK:
		return nil
	case otp.VerifyMismatch:
		return ErrInvalidOTP
	case otp.VerifyTooManyAttempts:
		return ErrOTPAttemptsExceeded
	default:
		return ErrOTPExpired
	}
}

// sendOTP выпускает новый код и отправляет его письмом
func (s *Service) sendOTP(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) (*models.OTPResponse, error) {
	email := user.Email

	// 1. Интервал между повторными отправками
	acquired, _, err := s.otpStore.AcquireCooldown(ctx, string(purpose), email, s.config.ResendInterval)
	if err != nil {
		s.logger.Error("sendOTP: cooldown check failed user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: sendOTP: %w", ErrInternal, err)
	}
	if !acquired {
		return nil, ErrOTPTooSoon
	}

	// 2. Лимит отправок за окно
	allowed, err := s.limiter.Allow(ctx, string(purpose)+":"+email)
	if err != nil {
		s.logger.Warn("sendOTP: rate limiter unavailable, allowing user=%d: %v", user.ID, err)
		allowed = true
	}
	if !allowed {
		return nil, ErrTooManyRequests
	}

	// 3. Генерируем и сохраняем хеш кода
	code, err := s.generate()
	if err != nil {
		s.releaseCooldown(ctx, purpose, email)
		return nil, fmt.Errorf("%w: sendOTP: generate code: %w", ErrInternal, err)
	}

	if err := s.otpStore.Save(ctx, string(purpose), email, HashCode(email, code), s.config.OTPTTL); err != nil {
		s.releaseCooldown(ctx, purpose, email)
		s.logger.Error("sendOTP: failed to save code user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: sendOTP: %w", ErrInternal, err)
	}

	// 4. Отправляем письмо
	msg := mailer.OTPMessage(email, user.FullName(), string(purpose), code, s.config.OTPTTL)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.releaseCooldown(ctx, purpose, email)
		s.logger.Error("sendOTP: failed to send code user=%d purpose=%s: %v", user.ID, purpose, err)
		return nil, fmt.Errorf("%w: %w", ErrMailDelivery, err)
	}

	s.metrics.IncOTPSent(string(purpose))
	s.logger.Info("sendOTP: code sent user=%d purpose=%s", user.ID, purpose)

	return &models.OTPResponse{
		OTPRequired: true,
		Purpose:     string(purpose),
		ExpiresAt:   s.now().Add(s.config.OTPTTL),
	}, nil
}

func (s *Service) releaseCooldown(ctx context.Context, purpose domain.OTPPurpose, email string) {
	if err := s.otpStore.ReleaseCooldown(ctx, string(purpose), email); err != nil {
		s.logger.Warn("sendOTP: failed to release cooldown purpose=%s: %v", purpose, err)
	}
}

func (s *Service) blindResponse(purpose domain.OTPPurpose) *models.OTPResponse {
	return &models.OTPResponse{
		OTPRequired: true,
		Purpose:     string(purpose),
		ExpiresAt:   s.now().Add(s.config.OTPTTL),
	}
}

// NormalizeEmail приводит email к каноничному виду
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashCode хеш кода, привязанный к email
func HashCode(email, code string) string {
	sum := sha256.Sum256([]byte(email + ":" + code))
	return hex.EncodeToString(sum[:])
}

// GenerateCode возвращает случайный шестизначный код
func GenerateCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < domain.OTPCodeLength; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", domain.OTPCodeLength, n.Int64()), nil
}
