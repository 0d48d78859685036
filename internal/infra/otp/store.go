package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// VerifyResult результат проверки кода
type VerifyResult int

const (
	VerifyOK VerifyResult = iota
	VerifyMismatch
	VerifyNotFound
	VerifyTooManyAttempts
)

// verifyScript атомарно сверяет хеш, считает попытки и удаляет код
// при успехе или исчерпании попыток
const verifyScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return -1
end
local attempts = redis.call("HINCRBY", KEYS[1], "attempts", 1)
if redis.call("HGET", KEYS[1], "hash") == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
if attempts >= tonumber(ARGV[2]) then
  redis.call("DEL", KEYS[1])
  return -2
end
return 0
`

// Store хранит хеши одноразовых кодов в Redis под ключом otp:<purpose>:<email>
type Store struct {
	client redis.Cmdable
	script *redis.Script
}

// NewStore создает хранилище кодов
func NewStore(client redis.Cmdable) *Store {
	return &Store{
		client: client,
		script: redis.NewScript(verifyScript),
	}
}

func codeKey(purpose, email string) string {
	return "otp:" + purpose + ":" + email
}

func cooldownKey(purpose, email string) string {
	return "otp:cooldown:" + purpose + ":" + email
}

// Save сохраняет хеш нового кода, заменяя предыдущий, и сбрасывает счетчик попыток
func (s *Store) Save(ctx context.Context, purpose, email, codeHash string, ttl time.Duration) error {
	key := codeKey(purpose, email)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "hash", codeHash, "attempts", 0)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Save %s: %w", ErrStore, key, err)
	}

	return nil
}

// Verify сверяет хеш кода. Код одноразовый: после успеха он удаляется
func (s *Store) Verify(ctx context.Context, purpose, email, codeHash string, maxAttempts int) (VerifyResult, error) {
	key := codeKey(purpose, email)

	res, err := s.script.Run(ctx, s.client, []string{key}, codeHash, maxAttempts).Int64()
	if err != nil {
		return VerifyNotFound, fmt.Errorf("%w: Verify %s: %w", ErrStore, key, err)
	}

	switch res {
	case 1:
		return VerifyOK, nil
	case -1:
		return VerifyNotFound, nil
	case -2:
		return VerifyTooManyAttempts, nil
	default:
		return VerifyMismatch, nil
	}
}

// TTL возвращает оставшееся время жизни кода
func (s *Store) TTL(ctx context.Context, purpose, email string) (time.Duration, error) {
	key := codeKey(purpose, email)

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: TTL %s: %w", ErrStore, key, err)
	}
	if ttl < 0 {
		return 0, ErrCodeNotFound
	}

	return ttl, nil
}

// Delete удаляет код
func (s *Store) Delete(ctx context.Context, purpose, email string) error {
	key := codeKey(purpose, email)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: Delete %s: %w", ErrStore, key, err)
	}
	return nil
}

// AcquireCooldown занимает интервал между отправками
// Возвращает false и оставшееся время, если предыдущая отправка была слишком недавно
func (s *Store) AcquireCooldown(ctx context.Context, purpose, email string, interval time.Duration) (bool, time.Duration, error) {
	if interval <= 0 {
		return true, 0, nil
	}

	key := cooldownKey(purpose, email)

	ok, err := s.client.SetNX(ctx, key, 1, interval).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%w: AcquireCooldown %s: %w", ErrStore, key, err)
	}
	if ok {
		return true, 0, nil
	}

	left, err := s.client.PTTL(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, fmt.Errorf("%w: AcquireCooldown %s: %w", ErrStore, key, err)
	}
	if left < 0 {
		left = 0
	}

	return false, left, nil
}

// ReleaseCooldown снимает интервал, если отправка не удалась
func (s *Store) ReleaseCooldown(ctx context.Context, purpose, email string) error {
	key := cooldownKey(purpose, email)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: ReleaseCooldown %s: %w", ErrStore, key, err)
	}
	return nil
}
