// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/alumnify/tenant-isolation/internal/types"
)

type StorageInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error)
	GetTenantByDomain(ctx context.Context, domain string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	UpdateTenantSettings(ctx context.Context, id string, settings map[string]any) error

	BeginMigration(ctx context.Context, tenantID string) error
	CompleteMigration(ctx context.Context, tenantID, schemaName string) error
	FailMigration(ctx context.Context, tenantID string) error
	MarkRolledBack(ctx context.Context, tenantID string) error

	HasActiveMembership(ctx context.Context, userID, tenantID string) (bool, error)
	ListActiveTenantsForUser(ctx context.Context, userID string) ([]*types.Tenant, error)

	GetGlobalUser(ctx context.Context, id string) (*types.GlobalUser, error)
	GetGlobalCourse(ctx context.Context, id string) (*types.GlobalCourse, error)
	ListGlobalUsersUpdatedSince(ctx context.Context, since time.Time) ([]*types.GlobalUser, error)

	AppendMigrationLog(ctx context.Context, entry *types.MigrationLog) error
	LatestBackupRef(ctx context.Context, tenantID string) (string, error)
	AppendSyncLog(ctx context.Context, entry *types.SyncLog) error
}
