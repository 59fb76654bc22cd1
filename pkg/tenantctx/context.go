// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"context"

	"github.com/alumnify/tenant-isolation/internal/types"
)

type tenantContextKey struct{}

// ContextWithTenant binds a tenant to the context. The current tenant is
// carried per logical task, never in a process-wide mutable singleton.
func ContextWithTenant(ctx context.Context, tenant *types.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, tenant)
}

// TenantFromContext returns the tenant bound to the context, if any.
func TenantFromContext(ctx context.Context) (*types.Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey{}).(*types.Tenant)
	return t, ok
}
