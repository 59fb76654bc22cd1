// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/tracing"
	"github.com/alumnify/tenant-isolation/internal/types"
)

// RequestDescriptor carries the tenant signals extracted from an incoming
// request. Precedence when several are present: header, then param, then host.
type RequestDescriptor struct {
	TenantIDHeader string
	TenantIDParam  string
	Host           string
}

func (d RequestDescriptor) cacheKey() string {
	switch {
	case d.TenantIDHeader != "":
		return "id:" + d.TenantIDHeader
	case d.TenantIDParam != "":
		return "id:" + d.TenantIDParam
	default:
		return "host:" + strings.ToLower(d.Host)
	}
}

// Resolver maps request descriptors to tenants and guards tenant access.
type Resolver struct {
	storage StorageInterface
	cache   CacheInterface
	history *SwitchHistory
	ttl     time.Duration
	tracer  tracing.TracingInterface
	logger  logging.LoggerInterface
	now     func() time.Time
}

func NewResolver(
	storage StorageInterface,
	cache CacheInterface,
	ttl time.Duration,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Resolver {
	return &Resolver{
		storage: storage,
		cache:   cache,
		history: NewSwitchHistory(128),
		ttl:     ttl,
		tracer:  tracer,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve maps a request descriptor to a tenant. Host resolution tries the
// full host as a custom domain first, then falls back to treating the leading
// label as a tenant slug.
func (r *Resolver) Resolve(ctx context.Context, descriptor RequestDescriptor) (*types.Tenant, error) {
	ctx, span := r.tracer.Start(ctx, "tenantctx.Resolve")
	defer span.End()

	key := descriptor.cacheKey()
	if tenant, ok := r.cache.Get(ctx, key); ok {
		return tenant, nil
	}

	tenant, err := r.lookup(ctx, descriptor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTenantNotResolved
		}
		return nil, fmt.Errorf("resolving tenant: %w", err)
	}

	r.cache.Set(ctx, key, tenant, r.ttl)
	return tenant, nil
}

func (r *Resolver) lookup(ctx context.Context, descriptor RequestDescriptor) (*types.Tenant, error) {
	switch {
	case descriptor.TenantIDHeader != "":
		return r.storage.GetTenantByID(ctx, descriptor.TenantIDHeader)
	case descriptor.TenantIDParam != "":
		return r.storage.GetTenantByID(ctx, descriptor.TenantIDParam)
	case descriptor.Host != "":
		return r.lookupByHost(ctx, descriptor.Host)
	default:
		return nil, storage.ErrNotFound
	}
}

func (r *Resolver) lookupByHost(ctx context.Context, host string) (*types.Tenant, error) {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	tenant, err := r.storage.GetTenantByDomain(ctx, host)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	slug, rest, found := strings.Cut(host, ".")
	if !found || rest == "" {
		return nil, storage.ErrNotFound
	}
	return r.storage.GetTenantBySlug(ctx, slug)
}

// SetCurrent binds the tenant to the context and records the switch. The
// previous binding, if any, is shadowed rather than mutated, so concurrent
// tasks holding the old context are unaffected.
func (r *Resolver) SetCurrent(ctx context.Context, tenant *types.Tenant) context.Context {
	r.history.Append(tenant.ID, r.now())
	return ContextWithTenant(ctx, tenant)
}

// History returns the recorded tenant context switches, oldest first.
func (r *Resolver) History() []SwitchEntry {
	return r.history.Snapshot()
}

// ValidateAccess reports whether the user holds an active membership in the
// tenant. A missing or inactive membership is a denial, not an error.
func (r *Resolver) ValidateAccess(ctx context.Context, userID, tenantID string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "tenantctx.ValidateAccess")
	defer span.End()

	ok, err := r.storage.HasActiveMembership(ctx, userID, tenantID)
	if err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	return ok, nil
}

// RequireAccess is ValidateAccess with a hard failure: a denial comes back as
// ErrAccessDenied, distinct from ErrTenantNotResolved.
func (r *Resolver) RequireAccess(ctx context.Context, userID, tenantID string) error {
	ok, err := r.ValidateAccess(ctx, userID, tenantID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccessDenied
	}
	return nil
}

// InvalidateTenant drops every cached resolution for the tenant. Call it after
// tenant settings, domain, or status change.
func (r *Resolver) InvalidateTenant(ctx context.Context, tenantID string) {
	r.cache.InvalidateTenant(ctx, tenantID)
}

// UpdateSettings persists new tenant settings and drops the tenant's cached
// resolutions so the next resolve sees the change.
func (r *Resolver) UpdateSettings(ctx context.Context, tenantID string, settings map[string]any) error {
	ctx, span := r.tracer.Start(ctx, "tenantctx.UpdateSettings")
	defer span.End()

	if err := r.storage.UpdateTenantSettings(ctx, tenantID, settings); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTenantNotResolved
		}
		return fmt.Errorf("updating tenant settings: %w", err)
	}
	r.InvalidateTenant(ctx, tenantID)
	return nil
}
