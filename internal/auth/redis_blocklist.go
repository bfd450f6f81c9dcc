package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mmynk/packs/internal/models"
)

const blocklistKeyPrefix = "blocklist:"

// RedisBlocklist stores revoked jti values in Redis so revocations survive
// restarts and are shared between replicas. Keys expire with the token.
type RedisBlocklist struct {
	client *redis.Client
	now    func() time.Time
}

var _ Blocklist = (*RedisBlocklist)(nil)

// NewRedisBlocklist connects to the Redis instance at redisURL
// (redis://[:password@]host:port/db) and verifies the connection.
func NewRedisBlocklist(ctx context.Context, redisURL string) (*RedisBlocklist, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisBlocklist{client: client, now: time.Now}, nil
}

// Revoke stores the jti until the token's own expiry.
func (b *RedisBlocklist) Revoke(ctx context.Context, token models.RevokedToken) error {
	ttl := revocationTTL(token, b.now())
	if err := b.client.Set(ctx, blocklistKeyPrefix+token.JTI, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (b *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blocklistKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blocklist: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis client.
func (b *RedisBlocklist) Close() error {
	return b.client.Close()
}

// revocationTTL is how long a blocklist key must live. A zero expiry means
// the key never expires; already-expired tokens still get a short TTL so the
// write is observable.
func revocationTTL(token models.RevokedToken, now time.Time) time.Duration {
	if token.ExpiresAt.IsZero() {
		return 0
	}
	ttl := token.ExpiresAt.Sub(now)
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}
