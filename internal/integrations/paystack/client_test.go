package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_InitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var body InitializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(500000), body.Amount)
		assert.Equal(t, "IH-1", body.Reference)
		assert.Equal(t, "12", body.Metadata["booking_id"])

		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"IH-1"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", time.Second, nopLogger{})
	res, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:     "student@example.com",
		Amount:    500000,
		Reference: "IH-1",
		Metadata:  map[string]string{"booking_id": "12"},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", res.AuthorizationURL)
	assert.Equal(t, "IH-1", res.Reference)
}

func TestClient_VerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transaction/verify/IH-ok":
			_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"id":1,"status":"success","reference":"IH-ok","amount":500000,"currency":"NGN","paid_at":"2026-03-01T10:00:00Z"}}`))
		case "/transaction/verify/IH-abandoned":
			_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"id":2,"status":"abandoned","reference":"IH-abandoned","amount":500000}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", "sk_test", time.Second, nopLogger{})
	ctx := context.Background()

	tx, err := client.VerifyTransaction(ctx, "IH-ok")
	require.NoError(t, err)
	assert.True(t, tx.IsSuccessful())
	assert.Equal(t, int64(500000), tx.Amount)
	require.NotNil(t, tx.PaidAt)

	tx, err = client.VerifyTransaction(ctx, "IH-abandoned")
	require.NoError(t, err)
	assert.False(t, tx.IsSuccessful())

	_, err = client.VerifyTransaction(ctx, "IH-missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", time.Second, nopLogger{})
	_, err := client.VerifyTransaction(context.Background(), "IH-1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_VerifySignature(t *testing.T) {
	client := NewClient("http://unused", "sk_test", time.Second, nopLogger{})
	body := []byte(`{"event":"charge.success","data":{"reference":"IH-1"}}`)

	mac := hmac.New(sha512.New, []byte("sk_test"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifySignature(body, valid))
	assert.False(t, client.VerifySignature(body, ""))
	assert.False(t, client.VerifySignature(body, "not-hex"))
	assert.False(t, client.VerifySignature([]byte(`{"tampered":true}`), valid))
}
