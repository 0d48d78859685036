package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/domain"
	authService "github.com/m04kA/InternHub-Service/internal/service/auth"
	"github.com/m04kA/InternHub-Service/internal/service/auth/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) Register(context.Context, *models.RegisterRequest) (*models.OTPResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.OTPResponse{OTPRequired: true, Purpose: "verify_email", ExpiresAt: time.Now().Add(10 * time.Minute)}, nil
}

func (f *fakeService) Login(context.Context, *models.LoginRequest) (*models.OTPResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.OTPResponse{OTPRequired: true, Purpose: "login"}, nil
}

func (f *fakeService) VerifyOTP(context.Context, *models.VerifyOTPRequest) (*models.AuthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AuthResponse{AccessToken: "jwt", TokenType: "Bearer", User: models.UserResponse{ID: 5}}, nil
}

func (f *fakeService) ResendOTP(context.Context, *models.ResendOTPRequest) (*models.OTPResponse, error) {
	return &models.OTPResponse{OTPRequired: true}, f.err
}

func (f *fakeService) ForgotPassword(context.Context, *models.ForgotPasswordRequest) (*models.MessageResponse, error) {
	return &models.MessageResponse{}, f.err
}

func (f *fakeService) ResetPassword(context.Context, *models.ResetPasswordRequest) (*models.MessageResponse, error) {
	return &models.MessageResponse{}, f.err
}

func (f *fakeService) GetMe(_ context.Context, userID int64) (*models.UserResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.UserResponse{ID: userID, Role: "student"}, nil
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return w
}

func TestRegister(t *testing.T) {
	body := `{"email":"ada@example.com","password":"correct-horse","firstName":"Ada","lastName":"Obi"}`

	w := post(NewHandler(&fakeService{}, nopLogger{}).Register, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = post(NewHandler(&fakeService{err: authService.ErrEmailTaken}, nopLogger{}).Register, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(NewHandler(&fakeService{}, nopLogger{}).Register, `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTP_ErrorMapping(t *testing.T) {
	body := `{"email":"ada@example.com","code":"123456","purpose":"login"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"wrong code", fmt.Errorf("%w: 4 attempts left", authService.ErrInvalidOTP), http.StatusUnauthorized, authService.ErrInvalidOTP.Error()},
		{"expired", authService.ErrOTPExpired, http.StatusUnauthorized, authService.ErrOTPExpired.Error()},
		{"locked", authService.ErrOTPAttemptsExceeded, http.StatusTooManyRequests, authService.ErrOTPAttemptsExceeded.Error()},
		{"internal", fmt.Errorf("%w: redis", authService.ErrInternal), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(NewHandler(&fakeService{err: tt.err}, nopLogger{}).VerifyOTP, body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				var resp map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantMsg, resp["message"])
			}
		})
	}
}

func TestVerifyOTP_RejectsResetPurpose(t *testing.T) {
	w := post(NewHandler(&fakeService{}, nopLogger{}).VerifyOTP,
		`{"email":"ada@example.com","code":"123456","purpose":"reset_password"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMe(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})

	w := httptest.NewRecorder()
	h.Me(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	r = r.WithContext(middleware.WithUser(r.Context(), 42, domain.RoleStudent))
	w = httptest.NewRecorder()
	h.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
}
