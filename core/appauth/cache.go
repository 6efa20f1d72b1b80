package appauth

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// keyPrefix namespaces credential tokens away from other cached values
// sharing the same Redis database.
const keyPrefix = "appauth/"

// RedisTokenCache mirrors credential tokens in Redis. Entries inherit the
// credential's expiry so the cache never outlives the durable record.
type RedisTokenCache struct {
	client goredis.UniversalClient
}

// NewRedisTokenCache creates a token cache over the given client.
func NewRedisTokenCache(client goredis.UniversalClient) *RedisTokenCache {
	return &RedisTokenCache{client: client}
}

// Get returns the cached token for id. The ok flag distinguishes a miss
// from an empty token.
func (c *RedisTokenCache) Get(ctx context.Context, id AppAuthID) (string, bool, error) {
	token, err := c.client.Get(ctx, cacheKey(id)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached token: %w", err)
	}
	return token, true, nil
}

// Put writes the credential's token, expiring alongside the credential
// itself when it carries an expiry.
func (c *RedisTokenCache) Put(ctx context.Context, rec AppAuth) error {
	args := goredis.SetArgs{}
	if rec.ExpiresAt != nil {
		args.ExpireAt = *rec.ExpiresAt
	}
	if err := c.client.SetArgs(ctx, cacheKey(rec.ID), rec.Token.Expose(), args).Err(); err != nil {
		return fmt.Errorf("cache token: %w", err)
	}
	return nil
}

// Del evicts the cached token for id. Missing keys are not an error.
func (c *RedisTokenCache) Del(ctx context.Context, id AppAuthID) error {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("evict cached token: %w", err)
	}
	return nil
}

func cacheKey(id AppAuthID) string {
	return keyPrefix + id.String()
}
