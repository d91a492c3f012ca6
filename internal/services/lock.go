package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	apperr "github.com/GORLEABHILASH/booklovers/internal/pkg/errors"
)

const defaultLockTTL = 10 * time.Second

func sessionLockKey(userID, bookID string) string { return "session:" + userID + ":" + bookID }

func goalLockKey(userID string, period string) string { return "goal:" + userID + ":" + period }

// withLock runs fn while holding key. A key that stays busy surfaces as ErrConflict.
func withLock(ctx context.Context, locker redis.Locker, key string, ttl time.Duration, fn func() error) error {
	if locker == nil {
		return fn()
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	release, err := locker.Acquire(ctx, key, ttl)
	if err != nil {
		if errors.Is(err, redis.ErrLockTimeout) {
			return apperr.Conflict("another request holds %s", key)
		}
		return fmt.Errorf("acquire %s: %w", key, err)
	}
	defer release()
	return fn()
}
