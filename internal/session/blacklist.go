package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Blacklist stores revoked session token IDs in redis until they would
// have expired anyway. Logout adds the token's jti; the auth middleware
// rejects any token whose jti is present.
type Blacklist struct {
	client *redis.Client
	prefix string
}

func NewBlacklist(client *redis.Client, prefix string) *Blacklist {
	return &Blacklist{client: client, prefix: prefix}
}

// Revoke marks the token ID as invalid for ttl.
func (b *Blacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to revoke.
		return nil
	}
	return b.client.Set(ctx, b.prefix+jti, "revoked", ttl).Err()
}

// Contains reports whether the token ID has been revoked.
func (b *Blacklist) Contains(ctx context.Context, jti string) (bool, error) {
	_, err := b.client.Get(ctx, b.prefix+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
