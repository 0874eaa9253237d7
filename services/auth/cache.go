package auth

import (
	"context"
	"errors"
	"time"

	"urbanset/utils"

	"github.com/go-redis/redis/v8"
)

// RoleCache remembers each identity's role between requests.
type RoleCache interface {
	// GetRole returns "" with a nil error on a miss.
	GetRole(ctx context.Context, identityID string) (string, error)
	// SetRole overwrites the cached role. Used when the role changes.
	SetRole(ctx context.Context, identityID, role string) error
	// FillRole stores a role read from the account record only when no
	// entry exists, so a slow reader never replaces a newer role.
	FillRole(ctx context.Context, identityID, role string) error
}

// RedisRoleCache stores roles under auth:role:<identityId>.
type RedisRoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRoleCache(client *redis.Client, ttl time.Duration) *RedisRoleCache {
	return &RedisRoleCache{client: client, ttl: ttl}
}

func roleKey(identityID string) string {
	return utils.AuthCachePrefix + identityID
}

func (c *RedisRoleCache) GetRole(ctx context.Context, identityID string) (string, error) {
	role, err := c.client.Get(ctx, roleKey(identityID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return role, err
}

func (c *RedisRoleCache) SetRole(ctx context.Context, identityID, role string) error {
	return c.client.Set(ctx, roleKey(identityID), role, c.ttl).Err()
}

func (c *RedisRoleCache) FillRole(ctx context.Context, identityID, role string) error {
	return c.client.SetNX(ctx, roleKey(identityID), role, c.ttl).Err()
}
