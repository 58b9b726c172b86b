// Package lock provides short-lived per-owner mutual exclusion on Redis.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the lock.
var ErrLockHeld = errors.New("lock held")

const (
	ScopeIntent     = "intent"
	ScopeMatches    = "matches"
	ScopeOnboarding = "onboarding"
)

// Locker serializes operations per (scope, owner).
type Locker interface {
	// Acquire returns a release func, or ErrLockHeld if the lock is taken.
	Acquire(ctx context.Context, scope string, ownerID int64) (release func(), err error)
}

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, prefix string, ttl time.Duration) Locker {
	if prefix == "" {
		prefix = "matchmaker:lock"
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &redisLocker{client: client, prefix: prefix, ttl: ttl}
}

// Key returns the Redis key guarding scope for ownerID.
func Key(prefix, scope string, ownerID int64) string {
	return fmt.Sprintf("%s:%s:%d", prefix, scope, ownerID)
}

func (l *redisLocker) Acquire(ctx context.Context, scope string, ownerID int64) (func(), error) {
	key := Key(l.prefix, scope, ownerID)

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generating lock token: %w", err)
	}

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		// Release must run even if the request context is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "failed to release lock", "key", key, "error", err)
		}
	}
	return release, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type noopLocker struct{}

// NewNoopLocker returns a Locker that always succeeds. Used when Redis is not configured.
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) Acquire(context.Context, string, int64) (func(), error) {
	return func() {}, nil
}
