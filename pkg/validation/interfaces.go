// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"context"

	"github.com/alumnify/tenant-isolation/internal/types"
	"github.com/alumnify/tenant-isolation/pkg/schema"
)

type StorageInterface interface {
	LatestBackupRef(ctx context.Context, tenantID string) (string, error)
}

type LifecycleInterface interface {
	ValidateSchema(ctx context.Context, tenantID string) (*schema.StructureReport, error)
	LoadManifest(ctx context.Context, ref string) (*types.BackupManifest, error)
}

type SchemaDataInterface interface {
	Counts(ctx context.Context, tenantID string) (map[string]int64, error)
	Orphans(ctx context.Context, tenantID string) ([]schema.Orphan, error)
}
