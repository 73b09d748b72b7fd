package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedTokenPrefix = "hiphop:auth:revoked:"

// TokenBlacklist 记录已注销的 JWT ID，直到 token 自然过期
type TokenBlacklist struct {
	Redis *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{Redis: rdb}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if b == nil || b.Redis == nil || jti == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.Redis.Set(ctx, revokedTokenPrefix+jti, 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if b == nil || b.Redis == nil || jti == "" {
		return false, nil
	}
	n, err := b.Redis.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
