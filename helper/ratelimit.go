package helper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles failed login attempts per email. The counters live in
// redis with an explicit TTL, so state is injected rather than captured as
// package globals and expires on its own.
type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	lockout     time.Duration
}

func NewLoginLimiter(rdb *redis.Client) *LoginLimiter {
	return &LoginLimiter{
		rdb:         rdb,
		maxAttempts: 5,
		lockout:     15 * time.Minute,
	}
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}

// Check returns whether another attempt is allowed, how many attempts remain
// and, when locked out, how long until the lock expires.
func (l *LoginLimiter) Check(ctx context.Context, email string) (bool, int, time.Duration, error) {
	count, err := l.rdb.Get(ctx, l.key(email)).Int()
	if err == redis.Nil {
		return true, l.maxAttempts, 0, nil
	}
	if err != nil {
		// Redis being down must not lock everyone out.
		return true, l.maxAttempts, 0, err
	}
	if count >= l.maxAttempts {
		ttl, _ := l.rdb.TTL(ctx, l.key(email)).Result()
		return false, 0, ttl, nil
	}
	return true, l.maxAttempts - count, 0, nil
}

// Record bumps the failure counter, or clears it after a successful login.
func (l *LoginLimiter) Record(ctx context.Context, email string, success bool) {
	if success {
		l.rdb.Del(ctx, l.key(email))
		return
	}
	pipe := l.rdb.TxPipeline()
	pipe.Incr(ctx, l.key(email))
	pipe.Expire(ctx, l.key(email), l.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("login limiter: cannot record attempt for %s: %v", email, err)
	}
}
