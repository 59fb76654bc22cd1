// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"context"
	"sync"
	"time"

	"github.com/alumnify/tenant-isolation/internal/types"
)

type cacheEntry struct {
	tenant    *types.Tenant
	expiresAt time.Time
}

// MemoryCache is a process-local TTL cache for resolved tenants. Suitable for
// single-instance deployments and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*types.Tenant, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.tenant, true
}

func (c *MemoryCache) Set(_ context.Context, key string, tenant *types.Tenant, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{tenant: tenant, expiresAt: c.now().Add(ttl)}
}

func (c *MemoryCache) InvalidateTenant(_ context.Context, tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if entry.tenant != nil && entry.tenant.ID == tenantID {
			delete(c.entries, key)
		}
	}
}
