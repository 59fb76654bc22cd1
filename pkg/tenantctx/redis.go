// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/types"
)

const (
	redisKeyPrefix      = "tenantctx:resolved:"
	redisIndexKeyPrefix = "tenantctx:index:"
)

// RedisCache is a shared TTL cache for resolved tenants. A per-tenant key
// index makes invalidation work across every descriptor that resolved to the
// same tenant.
type RedisCache struct {
	client *redis.Client
	logger logging.LoggerInterface
}

func NewRedisCache(client *redis.Client, logger logging.LoggerInterface) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*types.Tenant, bool) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnf("tenant cache read failed: %v", err)
		}
		return nil, false
	}
	var tenant types.Tenant
	if err := json.Unmarshal(raw, &tenant); err != nil {
		c.logger.Warnf("tenant cache entry corrupt, dropping key %q: %v", key, err)
		c.client.Del(ctx, redisKeyPrefix+key)
		return nil, false
	}
	return &tenant, true
}

func (c *RedisCache) Set(ctx context.Context, key string, tenant *types.Tenant, ttl time.Duration) {
	raw, err := json.Marshal(tenant)
	if err != nil {
		c.logger.Warnf("tenant cache encode failed: %v", err)
		return
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+key, raw, ttl)
	pipe.SAdd(ctx, redisIndexKeyPrefix+tenant.ID, key)
	pipe.Expire(ctx, redisIndexKeyPrefix+tenant.ID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnf("tenant cache write failed: %v", err)
	}
}

func (c *RedisCache) InvalidateTenant(ctx context.Context, tenantID string) {
	keys, err := c.client.SMembers(ctx, redisIndexKeyPrefix+tenantID).Result()
	if err != nil {
		c.logger.Warnf("tenant cache invalidation failed: %v", err)
		return
	}
	for i := range keys {
		keys[i] = redisKeyPrefix + keys[i]
	}
	keys = append(keys, redisIndexKeyPrefix+tenantID)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("tenant cache invalidation failed: %v", err)
	}
}
