package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("artist lock not acquired")
)

// Locker serializes appointment writes per artist, so two concurrent booking
// attempts cannot both pass the interval conflict check.
type Locker interface {
	WithArtistLock(ctx context.Context, artistID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisArtistLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisArtistLocker creates a locker that uses a per artist Redis key
func NewRedisArtistLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisArtistLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisArtistLocker) WithArtistLock(ctx context.Context, artistID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:artist:%s", artistID.String())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire artist lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisArtistLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release artist lock: %w", err)
	}
	return nil
}
