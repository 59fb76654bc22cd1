// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/alumnify/tenant-isolation/internal/db"
	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/monitoring"
	"github.com/alumnify/tenant-isolation/internal/tracing"
	"github.com/alumnify/tenant-isolation/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantBySlug")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"slug": slug})
}

func (s *Storage) GetTenantByDomain(ctx context.Context, domain string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByDomain")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"domain": domain})
}

func (s *Storage) getTenant(ctx context.Context, pred sq.Eq) (*types.Tenant, error) {
	var t types.Tenant
	var settings []byte

	err := s.db.Statement(ctx).
		Select("id", "slug", "domain", "status", "schema_name", "migration_status", "migration_completed_at", "settings", "created_at").
		From("tenants").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Slug, &t.Domain, &t.Status, &t.SchemaName, &t.MigrationStatus, &t.MigrationCompletedAt, &settings, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &t.Settings); err != nil {
			return nil, fmt.Errorf("failed to decode tenant settings: %w", err)
		}
	}

	return &t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "slug", "domain", "status", "schema_name", "migration_status", "migration_completed_at", "settings", "created_at").
		From("tenants").
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		var t types.Tenant
		var settings []byte
		if err := rows.Scan(&t.ID, &t.Slug, &t.Domain, &t.Status, &t.SchemaName, &t.MigrationStatus, &t.MigrationCompletedAt, &settings, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &t.Settings); err != nil {
				return nil, fmt.Errorf("failed to decode tenant settings: %w", err)
			}
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

func (s *Storage) UpdateTenantSettings(ctx context.Context, id string, settings map[string]any) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenantSettings")
	defer span.End()

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode tenant settings: %w", err)
	}

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("settings", raw).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update tenant settings: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// BeginMigration acquires the per-tenant migration lock with a compare-and-set
// on migration_status. Only none and failed states may enter in_progress.
func (s *Storage) BeginMigration(ctx context.Context, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.BeginMigration")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("migration_status", types.MigrationInProgress).
		Where(sq.Eq{"id": tenantID}).
		Where(sq.Eq{"migration_status": []string{types.MigrationNone, types.MigrationFailed}}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// CAS missed, distinguish lock contention from an invalid transition.
	t, err := s.GetTenantByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if t.MigrationStatus == types.MigrationInProgress {
		return ErrMigrationInProgress
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.MigrationStatus, types.MigrationInProgress)
}

// CompleteMigration sets schema_name and completed_at together with the status
// flip so schema_name is never visible outside a completed migration.
func (s *Storage) CompleteMigration(ctx context.Context, tenantID, schemaName string) error {
	ctx, span := s.tracer.Start(ctx, "storage.CompleteMigration")
	defer span.End()

	return s.transition(ctx, tenantID, types.MigrationInProgress, map[string]interface{}{
		"migration_status":       types.MigrationCompleted,
		"schema_name":            schemaName,
		"migration_completed_at": time.Now().UTC(),
	})
}

func (s *Storage) FailMigration(ctx context.Context, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.FailMigration")
	defer span.End()

	return s.transition(ctx, tenantID, types.MigrationInProgress, map[string]interface{}{
		"migration_status": types.MigrationFailed,
		"schema_name":      nil,
	})
}

func (s *Storage) MarkRolledBack(ctx context.Context, tenantID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkRolledBack")
	defer span.End()

	return s.transition(ctx, tenantID, types.MigrationCompleted, map[string]interface{}{
		"migration_status":       types.MigrationRolledBack,
		"schema_name":            nil,
		"migration_completed_at": nil,
	})
}

func (s *Storage) transition(ctx context.Context, tenantID, from string, set map[string]interface{}) error {
	res, err := s.db.Statement(ctx).
		Update("tenants").
		SetMap(set).
		Where(sq.Eq{"id": tenantID, "migration_status": from}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update migration status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		t, err := s.GetTenantByID(ctx, tenantID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: %s -> %v", ErrInvalidTransition, t.MigrationStatus, set["migration_status"])
	}

	return nil
}

func (s *Storage) HasActiveMembership(ctx context.Context, userID, tenantID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.HasActiveMembership")
	defer span.End()

	var one int
	err := s.db.Statement(ctx).
		Select("1").
		From("user_tenant_memberships").
		Where(sq.Eq{"global_user_id": userID, "tenant_id": tenantID, "active": true}).
		QueryRowContext(ctx).
		Scan(&one)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return true, nil
}

func (s *Storage) ListActiveTenantsForUser(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListActiveTenantsForUser")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("t.id", "t.slug", "t.domain", "t.status", "t.schema_name", "t.migration_status", "t.migration_completed_at", "t.settings", "t.created_at").
		From("tenants t").
		Join("user_tenant_memberships m ON t.id = m.tenant_id").
		Where(sq.Eq{"m.global_user_id": userID, "m.active": true, "t.status": types.TenantActive}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants for user: %w", err)
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		var t types.Tenant
		var settings []byte
		if err := rows.Scan(&t.ID, &t.Slug, &t.Domain, &t.Status, &t.SchemaName, &t.MigrationStatus, &t.MigrationCompletedAt, &settings, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &t.Settings); err != nil {
				return nil, fmt.Errorf("failed to decode tenant settings: %w", err)
			}
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tenants, nil
}

func (s *Storage) GetGlobalUser(ctx context.Context, id string) (*types.GlobalUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetGlobalUser")
	defer span.End()

	var u types.GlobalUser
	err := s.db.Statement(ctx).
		Select("id", "email", "name", "updated_at").
		From("global_users").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Email, &u.Name, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get global user: %w", err)
	}

	return &u, nil
}

func (s *Storage) GetGlobalCourse(ctx context.Context, id string) (*types.GlobalCourse, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetGlobalCourse")
	defer span.End()

	var c types.GlobalCourse
	err := s.db.Statement(ctx).
		Select("id", "code", "title", "updated_at").
		From("global_courses").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Code, &c.Title, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get global course: %w", err)
	}

	return &c, nil
}

func (s *Storage) ListGlobalUsersUpdatedSince(ctx context.Context, since time.Time) ([]*types.GlobalUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListGlobalUsersUpdatedSince")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "email", "name", "updated_at").
		From("global_users").
		Where(sq.Gt{"updated_at": since}).
		OrderBy("updated_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list global users: %w", err)
	}
	defer rows.Close()

	var users []*types.GlobalUser
	for rows.Next() {
		var u types.GlobalUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan global user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

func (s *Storage) AppendMigrationLog(ctx context.Context, entry *types.MigrationLog) error {
	ctx, span := s.tracer.Start(ctx, "storage.AppendMigrationLog")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate log ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("migration_logs").
		Columns("id", "tenant_id", "operation", "status", "step", "backup_ref", "detail").
		Values(id.String(), entry.TenantID, entry.Operation, entry.Status, entry.Step, entry.BackupRef, entry.Detail).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to append migration log: %w", err)
	}

	return nil
}

// LatestBackupRef returns the backup reference of the most recent migration
// run that persisted one, the rollback source of truth.
func (s *Storage) LatestBackupRef(ctx context.Context, tenantID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.LatestBackupRef")
	defer span.End()

	var ref string
	err := s.db.Statement(ctx).
		Select("backup_ref").
		From("migration_logs").
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.NotEq{"backup_ref": ""}).
		OrderBy("created_at DESC").
		Limit(1).
		QueryRowContext(ctx).
		Scan(&ref)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get latest backup ref: %w", err)
	}

	return ref, nil
}

func (s *Storage) AppendSyncLog(ctx context.Context, entry *types.SyncLog) error {
	ctx, span := s.tracer.Start(ctx, "storage.AppendSyncLog")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate log ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("sync_logs").
		Columns("id", "operation", "source_id", "tenant_ids", "status", "summary").
		Values(id.String(), entry.Operation, entry.SourceID, pq.Array(entry.TenantIDs), entry.Status, entry.Summary).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to append sync log: %w", err)
	}

	return nil
}
