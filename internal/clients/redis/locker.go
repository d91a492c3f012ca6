package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/GORLEABHILASH/booklovers/internal/observability"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

// ErrLockTimeout is returned when the key stays held for the whole wait window.
var ErrLockTimeout = errors.New("lock: timed out waiting for key")

// Locker serializes work per key across requests.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

const (
	defaultWait  = 3 * time.Second
	retryBackoff = 25 * time.Millisecond
)

// Only the holder's token may delete the key.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	log     *logger.Logger
	rdb     goredis.UniversalClient
	prefix  string
	wait    time.Duration
	metrics *observability.Metrics
}

func NewRedisLocker(log *logger.Logger, rdb goredis.UniversalClient, prefix string, wait time.Duration, metrics *observability.Metrics) (Locker, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if wait <= 0 {
		wait = defaultWait
	}
	return &redisLocker{
		log:     log.With("service", "RedisLocker"),
		rdb:     rdb,
		prefix:  prefix,
		wait:    wait,
		metrics: metrics,
	}, nil
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("lock: key required")
	}
	full := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.rdb.SetNX(ctx, full, token, ttl).Result()
		if err != nil {
			l.metrics.IncLock("redis", "error")
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
		if ok {
			l.metrics.IncLock("redis", "acquired")
			return func() {
				// Release on a fresh context so a cancelled request still frees the key.
				rctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := releaseScript.Run(rctx, l.rdb, []string{full}, token).Err(); err != nil {
					l.log.Warn("lock release failed", "key", key, "error", err)
				}
			}, nil
		}
		if err := sleepUntil(ctx, deadline); err != nil {
			l.metrics.IncLock("redis", "timeout")
			return nil, fmt.Errorf("lock %s: %w", key, err)
		}
	}
}

func sleepUntil(ctx context.Context, deadline time.Time) error {
	if !time.Now().Before(deadline) {
		return ErrLockTimeout
	}
	t := time.NewTimer(retryBackoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type localLocker struct {
	mu      sync.Mutex
	held    map[string]chan struct{}
	wait    time.Duration
	metrics *observability.Metrics
}

// NewLocalLocker serializes per key within this process only. Used when Redis is not configured.
func NewLocalLocker(wait time.Duration, metrics *observability.Metrics) Locker {
	if wait <= 0 {
		wait = defaultWait
	}
	return &localLocker{held: map[string]chan struct{}{}, wait: wait, metrics: metrics}
}

func (l *localLocker) Acquire(ctx context.Context, key string, _ time.Duration) (func(), error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("lock: key required")
	}
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	for {
		l.mu.Lock()
		ch, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()
			l.metrics.IncLock("local", "acquired")
			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			l.metrics.IncLock("local", "timeout")
			return nil, fmt.Errorf("lock %s: %w", key, ctx.Err())
		case <-timer.C:
			l.metrics.IncLock("local", "timeout")
			return nil, fmt.Errorf("lock %s: %w", key, ErrLockTimeout)
		}
	}
}
