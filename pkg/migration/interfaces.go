// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migration

import (
	"context"

	"github.com/alumnify/tenant-isolation/internal/types"
	"github.com/alumnify/tenant-isolation/pkg/schema"
	"github.com/alumnify/tenant-isolation/pkg/validation"
)

type StorageInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	BeginMigration(ctx context.Context, tenantID string) error
	CompleteMigration(ctx context.Context, tenantID, schemaName string) error
	FailMigration(ctx context.Context, tenantID string) error
	MarkRolledBack(ctx context.Context, tenantID string) error
	AppendMigrationLog(ctx context.Context, entry *types.MigrationLog) error
	LatestBackupRef(ctx context.Context, tenantID string) (string, error)
}

type LifecycleInterface interface {
	CreateSchema(ctx context.Context, tenantID string) (string, error)
	MigrateSchema(ctx context.Context, tenantID string, set ...[]schema.Migration) error
	DropSchema(ctx context.Context, tenantID string) error
	BackupHybrid(ctx context.Context, tenantID string) (*schema.Backup, error)
	RestoreHybrid(ctx context.Context, tenantID, ref string) error
}

type HybridDataInterface interface {
	Export(ctx context.Context, tenantID string) (*schema.Dataset, error)
	Counts(ctx context.Context, tenantID string) (map[string]int64, error)
	Purge(ctx context.Context, tenantID string) error
}

type SchemaDataInterface interface {
	Import(ctx context.Context, tenantID string, ds *schema.Dataset) error
	RecordIDTranslations(ctx context.Context, tenantID string, translations map[string]map[int64]int64) error
}

type ValidatorInterface interface {
	ValidateTenantMigration(ctx context.Context, tenantID string) (*validation.Report, error)
}
