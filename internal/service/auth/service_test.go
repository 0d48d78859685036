package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/otp"
	"github.com/m04kA/InternHub-Service/internal/infra/ratelimit"
	userRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/user"
	"github.com/m04kA/InternHub-Service/internal/integrations/mailer"
	"github.com/m04kA/InternHub-Service/internal/service/auth/models"
	"github.com/m04kA/InternHub-Service/pkg/password"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUsers struct {
	byID   map[int64]*domain.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, userRepo.ErrEmailExists
		}
	}
	created := *u
	created.ID = f.nextID
	f.nextID++
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) MarkEmailVerified(_ context.Context, id int64) error {
	f.byID[id].EmailVerified = true
	return nil
}

func (f *fakeUsers) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	f.byID[id].PasswordHash = hash
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "h:"+plain {
		return password.ErrMismatch
	}
	return nil
}

type fakeTokens struct{ issued []int64 }

func (f *fakeTokens) Issue(userID int64, role string) (string, time.Time, error) {
	f.issued = append(f.issued, userID)
	return "token-" + role, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), nil
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeMetrics struct{ otp map[string]int }

func (f *fakeMetrics) IncOTPSent(purpose string) {
	if f.otp == nil {
		f.otp = map[string]int{}
	}
	f.otp[purpose]++
}

type fixture struct {
	svc     *Service
	users   *fakeUsers
	tokens  *fakeTokens
	mail    *fakeMailer
	metrics *fakeMetrics
	redis   *miniredis.Miniredis
}

func newFixture(t *testing.T, sendLimit int) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		users:   newFakeUsers(),
		tokens:  &fakeTokens{},
		mail:    &fakeMailer{},
		metrics: &fakeMetrics{},
		redis:   mr,
	}

	f.svc = NewService(
		f.users,
		otp.NewStore(client),
		ratelimit.NewRedisLimiter(client, sendLimit, 10*time.Minute, "otp-send"),
		plainHasher{},
		f.tokens,
		f.mail,
		f.metrics,
		Config{OTPTTL: 10 * time.Minute, MaxAttempts: 3, ResendInterval: 30 * time.Second},
		nopLogger{},
	).WithCodeGenerator(func() (string, error) { return "123456", nil })

	return f
}

func (f *fixture) addUser(email string, verified bool) *domain.User {
	u, _ := f.users.Create(context.Background(), &domain.User{
		Email:         email,
		PasswordHash:  "h:secret-pass",
		FirstName:     "Ada",
		Role:          domain.RoleStudent,
		EmailVerified: verified,
	})
	return u
}

func TestService_Register(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, &models.RegisterRequest{
		Email:     "  Ada@Example.COM ",
		Password:  "long-enough",
		FirstName: "Ada",
		LastName:  "Obi",
	})
	require.NoError(t, err)
	assert.True(t, resp.OTPRequired)
	assert.Equal(t, "verify_email", resp.Purpose)

	user, err := f.users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.False(t, user.EmailVerified)

	require.Len(t, f.mail.sent, 1)
	assert.Contains(t, f.mail.sent[0].Text, "123456")
	assert.Equal(t, 1, f.metrics.otp["verify_email"])

	_, err = f.svc.Register(ctx, &models.RegisterRequest{Email: "ada@example.com", Password: "long-enough", FirstName: "A"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Register(ctx, &models.RegisterRequest{Email: "b@example.com", Password: "short", FirstName: "B"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestService_RegisterSucceedsWhenMailFails(t *testing.T) {
	f := newFixture(t, 5)
	f.mail.err = errors.New("smtp down")

	resp, err := f.svc.Register(context.Background(), &models.RegisterRequest{
		Email: "ada@example.com", Password: "long-enough", FirstName: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "verify_email", resp.Purpose)

	_, err = f.users.GetByEmail(context.Background(), "ada@example.com")
	assert.NoError(t, err)
}

func TestService_LoginAndVerify(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	user := f.addUser("ada@example.com", true)

	_, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	resp, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ADA@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "login", resp.Purpose)

	_, err = f.svc.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "ada@example.com", Code: "000000", Purpose: "login"})
	assert.ErrorIs(t, err, ErrInvalidOTP)

	auth, err := f.svc.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "ada@example.com", Code: "123456", Purpose: "login"})
	require.NoError(t, err)
	assert.Equal(t, "token-student", auth.AccessToken)
	assert.Equal(t, TokenType, auth.TokenType)
	assert.Equal(t, user.ID, auth.User.ID)

	// Код одноразовый
	_, err = f.svc.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "ada@example.com", Code: "123456", Purpose: "login"})
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestService_LoginUnverifiedSendsVerification(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	user := f.addUser("ada@example.com", false)

	resp, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "verify_email", resp.Purpose)

	auth, err := f.svc.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "ada@example.com", Code: "123456", Purpose: "verify_email"})
	require.NoError(t, err)
	assert.True(t, auth.User.EmailVerified)
	assert.True(t, f.users.byID[user.ID].EmailVerified)
}

func TestService_VerifyAttemptsExceeded(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	f.addUser("ada@example.com", true)

	_, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	req := &models.VerifyOTPRequest{Email: "ada@example.com", Code: "999999", Purpose: "login"}
	_, err = f.svc.VerifyOTP(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, err = f.svc.VerifyOTP(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidOTP)
	_, err = f.svc.VerifyOTP(ctx, req)
	assert.ErrorIs(t, err, ErrOTPAttemptsExceeded)

	req.Code = "123456"
	_, err = f.svc.VerifyOTP(ctx, req)
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestService_VerifyRejectsResetPurpose(t *testing.T) {
	f := newFixture(t, 5)
	_, err := f.svc.VerifyOTP(context.Background(), &models.VerifyOTPRequest{
		Email: "ada@example.com", Code: "123456", Purpose: "reset_password",
	})
	assert.ErrorIs(t, err, ErrInvalidPurpose)
}

func TestService_ResendCooldownAndLimit(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	f.addUser("ada@example.com", true)

	req := &models.ResendOTPRequest{Email: "ada@example.com", Purpose: "login"}

	_, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = f.svc.ResendOTP(ctx, req)
	assert.ErrorIs(t, err, ErrOTPTooSoon)

	f.redis.FastForward(31 * time.Second)
	_, err = f.svc.ResendOTP(ctx, req)
	require.NoError(t, err)

	f.redis.FastForward(31 * time.Second)
	_, err = f.svc.ResendOTP(ctx, req)
	assert.ErrorIs(t, err, ErrTooManyRequests)

	assert.Len(t, f.mail.sent, 2)
}

func TestService_ResendUnknownEmail(t *testing.T) {
	f := newFixture(t, 5)

	resp, err := f.svc.ResendOTP(context.Background(), &models.ResendOTPRequest{Email: "ghost@example.com", Purpose: "login"})
	require.NoError(t, err)
	assert.True(t, resp.OTPRequired)
	assert.Empty(t, f.mail.sent)
}

func TestService_ResendLoginRequiresPasswordStep(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	f.addUser("ada@example.com", true)
	req := &models.ResendOTPRequest{Email: "ada@example.com", Purpose: "login"}

	resp, err := f.svc.ResendOTP(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.OTPRequired)
	assert.Empty(t, f.mail.sent)

	_, err = f.svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	f.redis.FastForward(31 * time.Second)

	_, err = f.svc.ResendOTP(ctx, req)
	require.NoError(t, err)
	assert.Len(t, f.mail.sent, 2)

	// После входа код использован, повторная отправка снова требует пароль
	_, err = f.svc.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "ada@example.com", Code: "123456", Purpose: "login"})
	require.NoError(t, err)
	f.redis.FastForward(31 * time.Second)

	_, err = f.svc.ResendOTP(ctx, req)
	require.NoError(t, err)
	assert.Len(t, f.mail.sent, 2)
}

func TestService_MailFailureReleasesCooldown(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	f.addUser("ada@example.com", true)

	f.mail.err = errors.New("provider down")
	_, err := f.svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, ErrMailDelivery)

	f.mail.err = nil
	_, err = f.svc.ResendOTP(ctx, &models.ResendOTPRequest{Email: "ada@example.com", Purpose: "login"})
	assert.NoError(t, err)
}

func TestService_PasswordReset(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	user := f.addUser("ada@example.com", false)

	resp, err := f.svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.Equal(t, ForgotPasswordMessage, resp.Message)
	assert.Empty(t, f.mail.sent)

	_, err = f.svc.ForgotPassword(ctx, &models.ForgotPasswordRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "Reset your password", f.mail.sent[0].Subject)

	_, err = f.svc.ResetPassword(ctx, &models.ResetPasswordRequest{Email: "ada@example.com", Code: "123456", NewPassword: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = f.svc.ResetPassword(ctx, &models.ResetPasswordRequest{Email: "ada@example.com", Code: "123456", NewPassword: "brand-new-pass"})
	require.NoError(t, err)

	stored := f.users.byID[user.ID]
	assert.Equal(t, "h:brand-new-pass", stored.PasswordHash)
	assert.True(t, stored.EmailVerified)
}

func TestService_GetMe(t *testing.T) {
	f := newFixture(t, 5)
	user := f.addUser("ada@example.com", true)

	me, err := f.svc.GetMe(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)

	_, err = f.svc.GetMe(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Len(t, code, domain.OTPCodeLength)
	}
	assert.NotEqual(t, HashCode("a@b.c", "123456"), HashCode("x@y.z", "123456"))
}
