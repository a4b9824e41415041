package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "reconcile_lock:"

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) end return 0`

// Key names the reconcile lock of one auctioneer.
func Key(auctioneerID string) string {
	return keyPrefix + auctioneerID
}

// Locker hands out short-lived exclusive locks backed by SET NX PX.
type Locker struct {
	rdc   *redis.Client
	ttl   time.Duration
	token string
}

func New(rdc *redis.Client, ttl time.Duration) *Locker {
	return &Locker{rdc: rdc, ttl: ttl, token: uuid.NewString()}
}

// TryLock reports whether this process now holds key. The lock expires after
// the configured TTL if it is never released.
func (l *Locker) TryLock(ctx context.Context, key string) (bool, error) {
	return l.rdc.SetNX(ctx, key, l.token, l.ttl).Result()
}

func (l *Locker) Unlock(ctx context.Context, key string) error {
	return l.rdc.Eval(ctx, releaseScript, []string{key}, l.token).Err()
}
