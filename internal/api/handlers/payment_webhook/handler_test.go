package payment_webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	verifyPayment "github.com/m04kA/InternHub-Service/internal/usecase/verify_payment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeWebhook struct {
	signature string
	body      string
	err       error
}

func (f *fakeWebhook) HandleWebhook(_ context.Context, signature string, body []byte) error {
	f.signature = signature
	f.body = string(body)
	return f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"acknowledged", nil, http.StatusOK},
		{"bad signature", verifyPayment.ErrInvalidSignature, http.StatusUnauthorized},
		{"bad payload", verifyPayment.ErrInvalidInput, http.StatusBadRequest},
		{"retry later", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeWebhook{err: tt.err}
			h := NewHandler(uc, nopLogger{})

			body := `{"event":"charge.success","data":{"reference":"IH-1"}}`
			r := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", strings.NewReader(body))
			r.Header.Set("X-Paystack-Signature", "abc123")
			w := httptest.NewRecorder()

			h.Handle(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "abc123", uc.signature)
			assert.Equal(t, body, uc.body, "raw body is passed through unchanged")
		})
	}
}
