package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
user = "internhub"
dbname = "internhub"

[booking]
advance_booking_days = 30
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 30, cfg.Booking.AdvanceBookingDays)
	assert.Equal(t, 120, cfg.Booking.MinBookingNoticeMinutes)
	assert.Equal(t, "Africa/Lagos", cfg.Booking.Timezone)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_KeepsExplicitZeroNotice(t *testing.T) {
	path := writeConfig(t, `
[booking]
min_booking_notice_minutes = 0
`)
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Booking.MinBookingNoticeMinutes)
	assert.Equal(t, 30, cfg.Booking.ApplicationReviewDays)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = ""
`)
	t.Setenv("JWT_SECRET", "")

	_, err := Load(path)
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestValidate_S3RequiresBucket(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.JWTSecret = "x"
	cfg.applyDefaults(toml.MetaData{})
	cfg.Storage.Driver = "s3"

	assert.ErrorContains(t, cfg.Validate(), "s3_bucket")
}
