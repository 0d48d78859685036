package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendGridMailer_Send(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		assert.Equal(t, "Bearer SG.key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendGridMailer("SG.key", srv.URL, "InternHub", "no-reply@internhub.test")
	err := m.Send(context.Background(), Message{ToEmail: "a@b.c", ToName: "Ada", Subject: "Hello", Text: "hi"})
	require.NoError(t, err)

	from := payload["from"].(map[string]interface{})
	assert.Equal(t, "no-reply@internhub.test", from["email"])
	personalizations := payload["personalizations"].([]interface{})
	require.Len(t, personalizations, 1)
	assert.Equal(t, "[InternHub] Hello", personalizations[0].(map[string]interface{})["subject"])
}

func TestSendGridMailer_SendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewSendGridMailer("bad", srv.URL, "InternHub", "no-reply@internhub.test")
	err := m.Send(context.Background(), Message{ToEmail: "a@b.c", Subject: "x", Text: "y"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestOTPMessage(t *testing.T) {
	msg := OTPMessage("a@b.c", "", "reset_password", "123456", 10*time.Minute)
	assert.Equal(t, "Reset your password", msg.Subject)
	assert.Contains(t, msg.Text, "123456")
	assert.Contains(t, msg.Text, "10 minutes")
	assert.Contains(t, msg.Text, "Hi there")
}

func TestBookingStatusMessage(t *testing.T) {
	reason := "position filled"
	msg := BookingStatusMessage("a@b.c", "Ada", "Backend Intern", "rejected", &reason, false)
	assert.Contains(t, msg.Text, "declined")
	assert.Contains(t, msg.Text, reason)

	msg = BookingStatusMessage("a@b.c", "Ada", "Session with Tolu", "approved", nil, true)
	assert.Contains(t, msg.Text, "complete the payment")
}
