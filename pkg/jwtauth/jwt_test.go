package jwtauth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_IssueAndParse(t *testing.T) {
	p := NewProvider("secret", "internhub", time.Hour)

	token, expiresAt, err := p.Issue(7, "student")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := p.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestProvider_RejectsForeignSignature(t *testing.T) {
	issuer := NewProvider("secret-a", "internhub", time.Hour)
	verifier := NewProvider("secret-b", "internhub", time.Hour)

	token, _, err := issuer.Issue(1, "admin")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestProvider_RejectsExpired(t *testing.T) {
	p := NewProvider("secret", "internhub", time.Minute)
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := p.Issue(1, "student")
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
