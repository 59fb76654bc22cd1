// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"context"
	"time"

	"github.com/alumnify/tenant-isolation/internal/types"
)

type StorageInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error)
	GetTenantByDomain(ctx context.Context, domain string) (*types.Tenant, error)
	HasActiveMembership(ctx context.Context, userID, tenantID string) (bool, error)
	UpdateTenantSettings(ctx context.Context, id string, settings map[string]any) error
}

type CacheInterface interface {
	Get(ctx context.Context, key string) (*types.Tenant, bool)
	Set(ctx context.Context, key string, tenant *types.Tenant, ttl time.Duration)
	InvalidateTenant(ctx context.Context, tenantID string)
}
