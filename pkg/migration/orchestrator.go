// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/tracing"
	"github.com/alumnify/tenant-isolation/internal/types"
	"github.com/alumnify/tenant-isolation/pkg/validation"
)

// Step names recorded in the migration audit log. A failed run names the step
// it died on.
const (
	StepPrecondition = "precondition"
	StepBackup       = "backup"
	StepCreateSchema = "create_schema"
	StepStructural   = "structural_migration"
	StepCopy         = "data_copy"
	StepValidate     = "validation"
	StepFinalize     = "finalize"
)

const (
	opMigrate  = "migrate"
	opRollback = "rollback"
)

// Config tunes orchestration behavior. Zero value is the conservative
// default: hybrid rows are retained after migration and IDs are copied
// verbatim.
type Config struct {
	// PurgeHybrid removes the tenant's rows from the shared tables once the
	// migration is validated and committed.
	PurgeHybrid bool
	// RemapIDs assigns dense per-tenant IDs during the copy and records the
	// old-to-new translation inside the schema.
	RemapIDs bool
}

// Result is the outcome of one tenant migration attempt.
type Result struct {
	TenantID   string             `json:"tenant_id"`
	SchemaName string             `json:"schema_name,omitempty"`
	BackupRef  string             `json:"backup_ref,omitempty"`
	Report     *validation.Report `json:"report,omitempty"`
	Duration   time.Duration      `json:"duration"`
	Err        error              `json:"-"`
}

// Orchestrator drives the hybrid-to-schema migration for one tenant at a
// time: lock, snapshot, provision, copy, validate, commit. Any failure
// reverts the tenant to the hybrid path with its shared-table rows intact.
type Orchestrator struct {
	storage    StorageInterface
	lifecycle  LifecycleInterface
	hybridData HybridDataInterface
	schemaData SchemaDataInterface
	validator  ValidatorInterface
	config     Config

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
	now    func() time.Time
}

func NewOrchestrator(
	storage StorageInterface,
	lifecycle LifecycleInterface,
	hybridData HybridDataInterface,
	schemaData SchemaDataInterface,
	validator ValidatorInterface,
	config Config,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Orchestrator {
	return &Orchestrator{
		storage:    storage,
		lifecycle:  lifecycle,
		hybridData: hybridData,
		schemaData: schemaData,
		validator:  validator,
		config:     config,
		tracer:     tracer,
		logger:     logger,
		now:        time.Now,
	}
}

// Migrate moves one tenant from the shared hybrid tables into its own schema.
// The tenant lock is taken through a status transition, so two concurrent
// calls cannot both proceed. On any failure the schema created by this run is
// dropped, the tenant is marked failed and the step that died is logged; the
// hybrid rows are never touched by a failed run.
func (o *Orchestrator) Migrate(ctx context.Context, tenantID string) (*Result, error) {
	ctx, span := o.tracer.Start(ctx, "migration.Migrate")
	defer span.End()

	started := o.now()
	result := &Result{TenantID: tenantID}

	if err := o.storage.BeginMigration(ctx, tenantID); err != nil {
		result.Err = err
		return result, fmt.Errorf("locking tenant %s for migration: %w", tenantID, err)
	}
	o.logger.Infof("tenant %s: migration started", tenantID)

	createdSchema := false
	fail := func(step string, err error) (*Result, error) {
		if createdSchema {
			if dropErr := o.lifecycle.DropSchema(ctx, tenantID); dropErr != nil {
				o.logger.Errorf("tenant %s: dropping partial schema: %v", tenantID, dropErr)
			}
		}
		if failErr := o.storage.FailMigration(ctx, tenantID); failErr != nil {
			o.logger.Errorf("tenant %s: marking migration failed: %v", tenantID, failErr)
		}
		o.appendLog(ctx, &types.MigrationLog{
			TenantID:  tenantID,
			Operation: opMigrate,
			Status:    "failed",
			Step:      step,
			BackupRef: result.BackupRef,
			Detail:    err.Error(),
		})
		o.logger.Errorf("tenant %s: migration failed at %s: %v", tenantID, step, err)
		result.Duration = o.now().Sub(started)
		result.Err = err
		return result, fmt.Errorf("migrating tenant %s at step %s: %w", tenantID, step, err)
	}

	counts, err := o.hybridData.Counts(ctx, tenantID)
	if err != nil {
		return fail(StepPrecondition, err)
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return fail(StepPrecondition, ErrEmptyTenant)
	}

	backup, err := o.lifecycle.BackupHybrid(ctx, tenantID)
	if err != nil {
		return fail(StepBackup, err)
	}
	result.BackupRef = backup.Ref
	var snapshotRows int64
	for _, n := range backup.Manifest.Counts() {
		snapshotRows += n
	}
	// Recorded immediately so the snapshot is discoverable even if a later
	// step dies, and so validation can find it.
	o.appendLog(ctx, &types.MigrationLog{
		TenantID:  tenantID,
		Operation: opMigrate,
		Status:    "in_progress",
		Step:      StepBackup,
		BackupRef: backup.Ref,
		Detail:    fmt.Sprintf("snapshot of %d rows", snapshotRows),
	})

	schemaName, err := o.lifecycle.CreateSchema(ctx, tenantID)
	if err != nil {
		return fail(StepCreateSchema, err)
	}
	createdSchema = true
	result.SchemaName = schemaName

	if err := o.lifecycle.MigrateSchema(ctx, tenantID); err != nil {
		return fail(StepStructural, err)
	}

	dataset, err := o.hybridData.Export(ctx, tenantID)
	if err != nil {
		return fail(StepCopy, err)
	}
	if o.config.RemapIDs {
		remapped, translations := remapDataset(dataset)
		dataset = remapped
		if err := o.schemaData.Import(ctx, tenantID, dataset); err != nil {
			return fail(StepCopy, err)
		}
		if err := o.schemaData.RecordIDTranslations(ctx, tenantID, translations); err != nil {
			return fail(StepCopy, err)
		}
	} else if err := o.schemaData.Import(ctx, tenantID, dataset); err != nil {
		return fail(StepCopy, err)
	}

	report, err := o.validator.ValidateTenantMigration(ctx, tenantID)
	if err != nil {
		return fail(StepValidate, err)
	}
	result.Report = report
	if !report.Passed {
		return fail(StepValidate, fmt.Errorf("%w:\n%s", ErrValidationFailed, strings.TrimRight(validation.GenerateReport(report), "\n")))
	}

	if err := o.storage.CompleteMigration(ctx, tenantID, schemaName); err != nil {
		return fail(StepFinalize, err)
	}
	if o.config.PurgeHybrid {
		// The migration is already committed; a purge failure leaves
		// harmless residue in the shared tables, not an inconsistent tenant.
		if err := o.hybridData.Purge(ctx, tenantID); err != nil {
			o.logger.Warnf("tenant %s: purging hybrid rows after migration: %v", tenantID, err)
		}
	}

	o.appendLog(ctx, &types.MigrationLog{
		TenantID:  tenantID,
		Operation: opMigrate,
		Status:    "completed",
		Step:      StepFinalize,
		BackupRef: backup.Ref,
		Detail:    fmt.Sprintf("schema %s, %d rows copied", schemaName, dataset.Total()),
	})
	o.logger.Infof("tenant %s: migration completed into %s", tenantID, schemaName)

	result.Duration = o.now().Sub(started)
	return result, nil
}

// MigrateAll migrates every eligible tenant, one at a time. Tenants are
// independent: one failure never stops the remaining migrations. The
// returned error only reflects the tenant listing itself; per-tenant
// outcomes live in the results.
func (o *Orchestrator) MigrateAll(ctx context.Context) ([]*Result, error) {
	ctx, span := o.tracer.Start(ctx, "migration.MigrateAll")
	defer span.End()

	tenants, err := o.storage.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}

	var results []*Result
	for _, tenant := range tenants {
		if tenant.MigrationStatus != types.MigrationNone && tenant.MigrationStatus != types.MigrationFailed {
			continue
		}
		result, err := o.Migrate(ctx, tenant.ID)
		if err != nil {
			result.Err = err
		}
		results = append(results, result)
	}
	return results, nil
}

// Rollback restores a migrated tenant to the hybrid path: shared-table rows
// are restored from the latest snapshot, the schema is dropped and the
// tenant is marked rolled back.
func (o *Orchestrator) Rollback(ctx context.Context, tenantID string) error {
	ctx, span := o.tracer.Start(ctx, "migration.Rollback")
	defer span.End()

	// The status gate comes first. Restoring a snapshot truncates the
	// tenant's live hybrid rows, so a tenant that never completed a
	// migration must be rejected before any destructive step runs.
	tenant, err := o.storage.GetTenantByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("loading tenant %s: %w", tenantID, err)
	}
	if tenant.MigrationStatus != types.MigrationCompleted {
		return fmt.Errorf("tenant %s is %s, only completed migrations can be rolled back: %w",
			tenantID, tenant.MigrationStatus, storage.ErrInvalidTransition)
	}

	ref, err := o.storage.LatestBackupRef(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNoBackup
		}
		return fmt.Errorf("looking up backup for tenant %s: %w", tenantID, err)
	}

	rollbackFailed := func(step string, err error) error {
		o.appendLog(ctx, &types.MigrationLog{
			TenantID:  tenantID,
			Operation: opRollback,
			Status:    "failed",
			Step:      step,
			BackupRef: ref,
			Detail:    err.Error(),
		})
		o.logger.Errorf("tenant %s: rollback failed at %s: %v", tenantID, step, err)
		return fmt.Errorf("rolling back tenant %s at step %s: %w", tenantID, step, err)
	}

	if err := o.lifecycle.RestoreHybrid(ctx, tenantID, ref); err != nil {
		return rollbackFailed("restore", err)
	}
	if err := o.lifecycle.DropSchema(ctx, tenantID); err != nil {
		return rollbackFailed("drop_schema", err)
	}
	if err := o.storage.MarkRolledBack(ctx, tenantID); err != nil {
		return rollbackFailed(StepFinalize, err)
	}

	o.appendLog(ctx, &types.MigrationLog{
		TenantID:  tenantID,
		Operation: opRollback,
		Status:    "completed",
		Step:      StepFinalize,
		BackupRef: ref,
	})
	o.logger.Infof("tenant %s: rolled back to hybrid from %s", tenantID, ref)
	return nil
}

// appendLog is best effort. Losing an audit row must never turn a healthy
// operation into a failed one.
func (o *Orchestrator) appendLog(ctx context.Context, entry *types.MigrationLog) {
	if err := o.storage.AppendMigrationLog(ctx, entry); err != nil {
		o.logger.Errorf("tenant %s: appending migration log: %v", entry.TenantID, err)
	}
}
