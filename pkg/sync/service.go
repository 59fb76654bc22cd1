// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"fmt"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/tracing"
	"github.com/alumnify/tenant-isolation/internal/types"
)

const (
	opSyncUser   = "sync_user"
	opSyncCourse = "sync_course"
)

// TenantOutcome is the result of syncing one entity into one tenant.
type TenantOutcome struct {
	TenantID         string `json:"tenant_id"`
	Synced           bool   `json:"synced"`
	ConflictResolved bool   `json:"conflict_resolved"`
	Err              error  `json:"-"`
}

// Result aggregates one sync invocation across its target tenants.
type Result struct {
	SyncedCount       int             `json:"synced_count"`
	ConflictsResolved int             `json:"conflicts_resolved"`
	Success           bool            `json:"success"`
	PerTenant         []TenantOutcome `json:"per_tenant"`
}

// Service propagates changes to global entities into the isolated schemas of
// the tenants that carry a local copy. Tenants still on the hybrid path are
// skipped: their reads hit the shared tables directly.
type Service struct {
	storage    StorageInterface
	tenantData TenantDataInterface
	strategy   ConflictStrategy
	tracer     tracing.TracingInterface
	logger     logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tenantData TenantDataInterface,
	strategy ConflictStrategy,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Service {
	if strategy == nil {
		strategy = LatestWins{}
	}
	return &Service{
		storage:    storage,
		tenantData: tenantData,
		strategy:   strategy,
		tracer:     tracer,
		logger:     logger,
	}
}

// SyncUserToTenants upserts the global user into every tenant where the user
// holds an active membership. Tenants are independent: one failure never
// blocks the others, it is recorded in that tenant's outcome instead.
func (s *Service) SyncUserToTenants(ctx context.Context, user *types.GlobalUser) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "sync.SyncUserToTenants")
	defer span.End()

	tenants, err := s.storage.ListActiveTenantsForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing tenants for user %s: %w", user.ID, err)
	}

	result := &Result{Success: true}
	var targets []string
	for _, tenant := range tenants {
		if !tenant.SchemaReady() {
			continue
		}
		targets = append(targets, tenant.ID)
		outcome := s.syncUserToTenant(ctx, tenant.ID, user)
		if outcome.Err != nil {
			result.Success = false
			s.logger.Warnf("syncing user %s to tenant %s: %v", user.ID, tenant.ID, outcome.Err)
		}
		if outcome.Synced {
			result.SyncedCount++
		}
		if outcome.ConflictResolved {
			result.ConflictsResolved++
		}
		result.PerTenant = append(result.PerTenant, outcome)
	}

	s.appendLog(ctx, &types.SyncLog{
		Operation: opSyncUser,
		SourceID:  user.ID,
		TenantIDs: targets,
		Status:    statusOf(result.Success),
		Summary: fmt.Sprintf("%d synced, %d conflicts resolved across %d tenants",
			result.SyncedCount, result.ConflictsResolved, len(targets)),
	})
	return result, nil
}

func (s *Service) syncUserToTenant(ctx context.Context, tenantID string, user *types.GlobalUser) TenantOutcome {
	outcome := TenantOutcome{TenantID: tenantID}

	local, err := s.tenantData.GetUserByGlobalID(ctx, tenantID, user.ID)
	if err != nil {
		outcome.Err = fmt.Errorf("reading local user: %w", err)
		return outcome
	}

	// A conflict exists only when the tenant's copy carries a newer local
	// edit than the sync source. Equal timestamps are the normal state a
	// previous sync leaves behind, so a re-sync stays an ordinary upsert.
	if local != nil && local.LocalUpdatedAt.After(user.UpdatedAt) {
		winner, err := s.strategy.Resolve(local.LocalUpdatedAt, user.UpdatedAt)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		outcome.ConflictResolved = true
		if winner == WinnerLocal {
			return outcome
		}
	}

	if err := s.tenantData.UpsertUserFromGlobal(ctx, tenantID, user); err != nil {
		outcome.Err = fmt.Errorf("upserting user: %w", err)
		outcome.ConflictResolved = false
		return outcome
	}
	outcome.Synced = true
	return outcome
}

// SyncCourseToTenant upserts the global course into one tenant's schema.
// Tenant-owned customizations, custom title and custom settings, are never
// overwritten; the upsert touches canonical columns only.
func (s *Service) SyncCourseToTenant(ctx context.Context, course *types.GlobalCourse, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "sync.SyncCourseToTenant")
	defer span.End()

	tenant, err := s.storage.GetTenantByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("loading tenant %s: %w", tenantID, err)
	}
	if !tenant.SchemaReady() {
		s.logger.Debugf("tenant %s is on the hybrid path, skipping course sync", tenantID)
		return nil
	}

	syncErr := s.syncCourse(ctx, tenantID, course)
	s.appendLog(ctx, &types.SyncLog{
		Operation: opSyncCourse,
		SourceID:  course.ID,
		TenantIDs: []string{tenantID},
		Status:    statusOf(syncErr == nil),
		Summary:   courseSummary(syncErr),
	})
	return syncErr
}

func (s *Service) syncCourse(ctx context.Context, tenantID string, course *types.GlobalCourse) error {
	local, err := s.tenantData.GetCourseByGlobalID(ctx, tenantID, course.ID)
	if err != nil {
		return fmt.Errorf("reading local course: %w", err)
	}
	if local != nil && local.LocalUpdatedAt.After(course.UpdatedAt) {
		winner, err := s.strategy.Resolve(local.LocalUpdatedAt, course.UpdatedAt)
		if err != nil {
			return err
		}
		if winner == WinnerLocal {
			return nil
		}
	}
	if err := s.tenantData.UpsertCourseFromGlobal(ctx, tenantID, course); err != nil {
		return fmt.Errorf("upserting course: %w", err)
	}
	return nil
}

// appendLog is best effort, the audit trail must not fail a healthy sync.
func (s *Service) appendLog(ctx context.Context, entry *types.SyncLog) {
	if err := s.storage.AppendSyncLog(ctx, entry); err != nil {
		s.logger.Errorf("appending sync log for %s %s: %v", entry.Operation, entry.SourceID, err)
	}
}

func statusOf(success bool) string {
	if success {
		return "completed"
	}
	return "partial"
}

func courseSummary(err error) string {
	if err != nil {
		return "failed: " + err.Error()
	}
	return "course synced, customizations preserved"
}
