package helper

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates JWTs on logout. Entries carry a TTL equal to the
// token's remaining lifetime, so nothing needs manual eviction.
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := b.rdb.Set(ctx, "token_blacklist:"+token, 1, ttl).Err(); err != nil {
		log.Printf("token blacklist: cannot store token: %v", err)
	}
}

func (b *TokenBlacklist) Contains(ctx context.Context, token string) bool {
	n, err := b.rdb.Exists(ctx, "token_blacklist:"+token).Result()
	if err != nil {
		// Fail open: a dead redis should not log every user out.
		return false
	}
	return n > 0
}

// Shared security stores, wired from main with the injected redis client.
var (
	Limiter   *LoginLimiter
	Blacklist *TokenBlacklist
)

func InitSecurityStores(rdb *redis.Client) {
	Limiter = NewLoginLimiter(rdb)
	Blacklist = NewTokenBlacklist(rdb)
}
