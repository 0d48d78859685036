package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 8
	// MaxLength ограничение bcrypt: байты после 72-го игнорируются
	MaxLength = 72
)

var (
	// ErrTooShort возвращается для слишком короткого пароля
	ErrTooShort = errors.New("password is too short")

	// ErrTooLong возвращается для пароля длиннее 72 байт
	ErrTooLong = errors.New("password is too long")

	// ErrMismatch возвращается, если пароль не совпадает с хешем
	ErrMismatch = errors.New("password does not match")
)

// Hasher хеширует пароли через bcrypt
type Hasher struct {
	cost int
}

// NewHasher создает хешер. cost <= 0 означает bcrypt.DefaultCost
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Validate проверяет требования к паролю
func Validate(plain string) error {
	if len(plain) < MinLength {
		return fmt.Errorf("%w: minimum %d characters", ErrTooShort, MinLength)
	}
	if len(plain) > MaxLength {
		return fmt.Errorf("%w: maximum %d bytes", ErrTooLong, MaxLength)
	}
	return nil
}

// Hash возвращает bcrypt хеш пароля
func (h *Hasher) Hash(plain string) (string, error) {
	if err := Validate(plain); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare сравнивает пароль с хешем
func (h *Hasher) Compare(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}
