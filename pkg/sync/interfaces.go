// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"time"

	"github.com/alumnify/tenant-isolation/internal/types"
)

type StorageInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListActiveTenantsForUser(ctx context.Context, userID string) ([]*types.Tenant, error)
	ListGlobalUsersUpdatedSince(ctx context.Context, since time.Time) ([]*types.GlobalUser, error)
	AppendSyncLog(ctx context.Context, entry *types.SyncLog) error
}

type TenantDataInterface interface {
	GetUserByGlobalID(ctx context.Context, tenantID, globalUserID string) (*types.TenantUser, error)
	UpsertUserFromGlobal(ctx context.Context, tenantID string, u *types.GlobalUser) error
	GetCourseByGlobalID(ctx context.Context, tenantID, globalCourseID string) (*types.TenantCourse, error)
	UpsertCourseFromGlobal(ctx context.Context, tenantID string, c *types.GlobalCourse) error
}
