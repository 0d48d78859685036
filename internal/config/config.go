package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса (config.toml + переменные окружения для секретов)
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	OTP      OTPConfig      `toml:"otp"`
	Booking  BookingConfig  `toml:"booking"`
	Paystack PaystackConfig `toml:"paystack"`
	Mail     MailConfig     `toml:"mail"`
	Storage  StorageConfig  `toml:"storage"`
	CORS     CORSConfig     `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	JWTIssuer         string `toml:"jwt_issuer"`
	AccessTokenTTLMin int    `toml:"access_token_ttl_minutes"`
	BcryptCost        int    `toml:"bcrypt_cost"`
}

// AccessTokenTTL время жизни access токена
func (c AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

type OTPConfig struct {
	TTLMinutes        int `toml:"ttl_minutes"`
	MaxAttempts       int `toml:"max_attempts"`
	ResendIntervalSec int `toml:"resend_interval_seconds"`
	SendLimit         int `toml:"send_limit"`          // отправок на email+цель за окно
	SendWindowMinutes int `toml:"send_window_minutes"` // окно rate limit
}

type BookingConfig struct {
	Timezone                   string `toml:"timezone"`
	Currency                   string `toml:"currency"`
	AdvanceBookingDays         int    `toml:"advance_booking_days"` // 0 = без ограничений
	MinBookingNoticeMinutes    int    `toml:"min_booking_notice_minutes"`
	ApplicationReviewDays      int    `toml:"application_review_days"`
	ExpiryCheckIntervalSeconds int    `toml:"expiry_check_interval_seconds"`
}

// Location часовой пояс, в котором интерпретируются даты и время сессий
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

type PaystackConfig struct {
	BaseURL     string `toml:"base_url"`
	SecretKey   string `toml:"secret_key"`
	CallbackURL string `toml:"callback_url"`
	Timeout     int    `toml:"timeout"` // секунды
}

type MailConfig struct {
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	FromName       string `toml:"from_name"`
	FromEmail      string `toml:"from_email"`
}

type StorageConfig struct {
	Driver            string `toml:"driver"` // "s3" или "local"
	LocalDir          string `toml:"local_dir"`
	PublicBaseURL     string `toml:"public_base_url"`
	S3Endpoint        string `toml:"s3_endpoint"`
	S3Region          string `toml:"s3_region"`
	S3Bucket          string `toml:"s3_bucket"`
	S3AccessKeyID     string `toml:"s3_access_key_id"`
	S3SecretAccessKey string `toml:"s3_secret_access_key"`
	MaxCVSizeMB       int    `toml:"max_cv_size_mb"`
	PresignTTLMinutes int    `toml:"presign_ttl_minutes"`
}

type CORSConfig struct {
	AllowedOrigins   []string `toml:"allowed_origins"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// Load читает TOML файл, подгружает .env (если есть), применяет переменные окружения
// и значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	// .env опционален
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults(meta)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_HOST":              &c.Database.Host,
		"DB_PASSWORD":          &c.Database.Password,
		"JWT_SECRET":           &c.Auth.JWTSecret,
		"REDIS_ADDR":           &c.Redis.Addr,
		"REDIS_PASSWORD":       &c.Redis.Password,
		"PAYSTACK_SECRET_KEY":  &c.Paystack.SecretKey,
		"SENDGRID_API_KEY":     &c.Mail.SendGridAPIKey,
		"S3_ACCESS_KEY_ID":     &c.Storage.S3AccessKeyID,
		"S3_SECRET_ACCESS_KEY": &c.Storage.S3SecretAccessKey,
	}

	for key, target := range overrides {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*target = v
		}
	}
}

// applyDefaults заполняет незаданные параметры.
// Для параметров, где 0 допустим, учитывается наличие ключа в файле
func (c *Config) applyDefaults(meta toml.MetaData) {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 30)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")
	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "internhub")

	setString(&c.Redis.Addr, "localhost:6379")

	setString(&c.Auth.JWTIssuer, "internhub")
	setInt(&c.Auth.AccessTokenTTLMin, 60*24)

	setInt(&c.OTP.TTLMinutes, 10)
	setInt(&c.OTP.MaxAttempts, 5)
	setInt(&c.OTP.ResendIntervalSec, 30)
	setInt(&c.OTP.SendLimit, 3)
	setInt(&c.OTP.SendWindowMinutes, 10)

	setString(&c.Booking.Timezone, "Africa/Lagos")
	setString(&c.Booking.Currency, "NGN")
	if !meta.IsDefined("booking", "min_booking_notice_minutes") {
		c.Booking.MinBookingNoticeMinutes = 120
	}
	setInt(&c.Booking.ApplicationReviewDays, 30)
	setInt(&c.Booking.ExpiryCheckIntervalSeconds, 300)

	setString(&c.Paystack.BaseURL, "https://api.paystack.co")
	setInt(&c.Paystack.Timeout, 15)

	setString(&c.Mail.FromName, "InternHub")
	setString(&c.Mail.FromEmail, "no-reply@internhub.local")

	setString(&c.Storage.Driver, "local")
	setString(&c.Storage.LocalDir, "./uploads")
	setString(&c.Storage.S3Region, "auto")
	setInt(&c.Storage.MaxCVSizeMB, 5)
	setInt(&c.Storage.PresignTTLMinutes, 15)

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	setInt(&c.CORS.MaxAge, 300)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port %d is out of range", c.Server.HTTPPort))
	}
	if c.Booking.AdvanceBookingDays < 0 {
		errs = append(errs, errors.New("booking.advance_booking_days must not be negative"))
	}
	if c.Booking.MinBookingNoticeMinutes < 0 {
		errs = append(errs, errors.New("booking.min_booking_notice_minutes must not be negative"))
	}
	if _, err := c.Booking.Location(); err != nil {
		errs = append(errs, fmt.Errorf("booking.timezone: %w", err))
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" || c.Storage.S3Endpoint == "" {
			errs = append(errs, errors.New("storage.s3_bucket and storage.s3_endpoint are required for s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}

	return errors.Join(errs...)
}

func setInt(target *int, def int) {
	if *target == 0 {
		*target = def
	}
}

func setString(target *string, def string) {
	if *target == "" {
		*target = def
	}
}
