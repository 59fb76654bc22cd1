// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migration

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/types"
	"github.com/alumnify/tenant-isolation/pkg/schema"
	"github.com/alumnify/tenant-isolation/pkg/validation"
)

//go:generate mockgen -build_flags=--mod=mod -package migration -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package migration -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	testTenantID   = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	testSchemaName = "tenant_7c9e6679_7425_40de_944b_e07fc1f90ae7"
	testBackupRef  = "backups/7c9e6679-7425-40de-944b-e07fc1f90ae7/20260314T093000.000Z"
)

type orchestratorMocks struct {
	storage    *MockStorageInterface
	lifecycle  *MockLifecycleInterface
	hybridData *MockHybridDataInterface
	schemaData *MockSchemaDataInterface
	validator  *MockValidatorInterface
}

func testOrchestrator(t *testing.T, ctrl *gomock.Controller, config Config) (*Orchestrator, orchestratorMocks) {
	t.Helper()

	mocks := orchestratorMocks{
		storage:    NewMockStorageInterface(ctrl),
		lifecycle:  NewMockLifecycleInterface(ctrl),
		hybridData: NewMockHybridDataInterface(ctrl),
		schemaData: NewMockSchemaDataInterface(ctrl),
		validator:  NewMockValidatorInterface(ctrl),
	}
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().
		Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).
		AnyTimes()

	orchestrator := NewOrchestrator(
		mocks.storage, mocks.lifecycle, mocks.hybridData, mocks.schemaData,
		mocks.validator, config, mockTracer, logging.NewNoopLogger(),
	)
	return orchestrator, mocks
}

func testDataset() *schema.Dataset {
	return &schema.Dataset{
		Users: []types.TenantUser{
			{ID: 11, GlobalUserID: "g-1", Email: "ada@acme.test"},
			{ID: 14, GlobalUserID: "g-2", Email: "grace@acme.test"},
		},
		Courses: []types.TenantCourse{
			{ID: 21, GlobalCourseID: "c-1", Code: "GO-101"},
		},
		Enrollments: []types.TenantEnrollment{
			{ID: 31, UserID: 11, CourseID: 21, EnrolledAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
			{ID: 35, UserID: 14, CourseID: 21, EnrolledAt: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func testBackup() *schema.Backup {
	return &schema.Backup{
		Ref: testBackupRef,
		Manifest: &types.BackupManifest{
			TenantID: testTenantID,
			Entities: []types.BackupEntity{
				{Name: "users", Artifact: testBackupRef + "/users.jsonl", RowCount: 2},
				{Name: "courses", Artifact: testBackupRef + "/courses.jsonl", RowCount: 1},
				{Name: "enrollments", Artifact: testBackupRef + "/enrollments.jsonl", RowCount: 2},
			},
		},
	}
}

func passedReport() *validation.Report {
	return &validation.Report{
		TenantID: testTenantID,
		Passed:   true,
		Checks: []validation.Check{
			{Name: validation.CheckSchemaStructure, Passed: true},
			{Name: validation.CheckDataMigration, Passed: true},
			{Name: validation.CheckDataIntegrity, Passed: true},
		},
	}
}

func TestMigrateSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})
	dataset := testDataset()

	gomock.InOrder(
		mocks.storage.EXPECT().BeginMigration(gomock.Any(), testTenantID).Return(nil),
		mocks.hybridData.EXPECT().Counts(gomock.Any(), testTenantID).
			Return(map[string]int64{"users": 2, "courses": 1, "enrollments": 2}, nil),
		mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), testTenantID).Return(testBackup(), nil),
		mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil),
		mocks.lifecycle.EXPECT().CreateSchema(gomock.Any(), testTenantID).Return(testSchemaName, nil),
		mocks.lifecycle.EXPECT().MigrateSchema(gomock.Any(), testTenantID).Return(nil),
		mocks.hybridData.EXPECT().Export(gomock.Any(), testTenantID).Return(dataset, nil),
		mocks.schemaData.EXPECT().Import(gomock.Any(), testTenantID, dataset).Return(nil),
		mocks.validator.EXPECT().ValidateTenantMigration(gomock.Any(), testTenantID).Return(passedReport(), nil),
		mocks.storage.EXPECT().CompleteMigration(gomock.Any(), testTenantID, testSchemaName).Return(nil),
		mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil),
	)

	result, err := orchestrator.Migrate(context.Background(), testTenantID)
	if err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if result.SchemaName != testSchemaName {
		t.Errorf("result.SchemaName = %q, want %q", result.SchemaName, testSchemaName)
	}
	if result.BackupRef != testBackupRef {
		t.Errorf("result.BackupRef = %q, want %q", result.BackupRef, testBackupRef)
	}
	if result.Report == nil || !result.Report.Passed {
		t.Error("result missing passed validation report")
	}
}

func TestMigratePurgesHybridWhenConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{PurgeHybrid: true})

	mocks.storage.EXPECT().BeginMigration(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Counts(gomock.Any(), testTenantID).
		Return(map[string]int64{"users": 2, "courses": 1, "enrollments": 2}, nil)
	mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), testTenantID).Return(testBackup(), nil)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mocks.lifecycle.EXPECT().CreateSchema(gomock.Any(), testTenantID).Return(testSchemaName, nil)
	mocks.lifecycle.EXPECT().MigrateSchema(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Export(gomock.Any(), testTenantID).Return(testDataset(), nil)
	mocks.schemaData.EXPECT().Import(gomock.Any(), testTenantID, gomock.Any()).Return(nil)
	mocks.validator.EXPECT().ValidateTenantMigration(gomock.Any(), testTenantID).Return(passedReport(), nil)
	mocks.storage.EXPECT().CompleteMigration(gomock.Any(), testTenantID, testSchemaName).Return(nil)
	mocks.hybridData.EXPECT().Purge(gomock.Any(), testTenantID).Return(nil)

	if _, err := orchestrator.Migrate(context.Background(), testTenantID); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
}

func TestMigrateRemapsIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{RemapIDs: true})

	mocks.storage.EXPECT().BeginMigration(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Counts(gomock.Any(), testTenantID).
		Return(map[string]int64{"users": 2, "courses": 1, "enrollments": 2}, nil)
	mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), testTenantID).Return(testBackup(), nil)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mocks.lifecycle.EXPECT().CreateSchema(gomock.Any(), testTenantID).Return(testSchemaName, nil)
	mocks.lifecycle.EXPECT().MigrateSchema(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Export(gomock.Any(), testTenantID).Return(testDataset(), nil)

	var imported *schema.Dataset
	mocks.schemaData.EXPECT().
		Import(gomock.Any(), testTenantID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, ds *schema.Dataset) error {
			imported = ds
			return nil
		})
	mocks.schemaData.EXPECT().
		RecordIDTranslations(gomock.Any(), testTenantID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, translations map[string]map[int64]int64) error {
			if translations["users"][11] != 1 || translations["users"][14] != 2 {
				t.Errorf("unexpected user translations: %v", translations["users"])
			}
			return nil
		})
	mocks.validator.EXPECT().ValidateTenantMigration(gomock.Any(), testTenantID).Return(passedReport(), nil)
	mocks.storage.EXPECT().CompleteMigration(gomock.Any(), testTenantID, testSchemaName).Return(nil)

	if _, err := orchestrator.Migrate(context.Background(), testTenantID); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}

	if imported == nil {
		t.Fatal("no dataset imported")
	}
	if imported.Users[0].ID != 1 || imported.Users[1].ID != 2 {
		t.Errorf("user IDs not remapped: %+v", imported.Users)
	}
	if imported.Enrollments[1].UserID != 2 || imported.Enrollments[1].CourseID != 1 {
		t.Errorf("enrollment foreign keys not remapped: %+v", imported.Enrollments[1])
	}
}

func TestMigrateRefusesEmptyTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	mocks.storage.EXPECT().BeginMigration(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Counts(gomock.Any(), testTenantID).Return(map[string]int64{}, nil)
	mocks.storage.EXPECT().FailMigration(gomock.Any(), testTenantID).Return(nil)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), logEntryAtStep(StepPrecondition)).Return(nil)

	_, err := orchestrator.Migrate(context.Background(), testTenantID)
	if !errors.Is(err, ErrEmptyTenant) {
		t.Fatalf("expected ErrEmptyTenant, got %v", err)
	}
}

func TestMigrateLockedTenantRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	mocks.storage.EXPECT().
		BeginMigration(gomock.Any(), testTenantID).
		Return(storage.ErrMigrationInProgress)

	_, err := orchestrator.Migrate(context.Background(), testTenantID)
	if !errors.Is(err, storage.ErrMigrationInProgress) {
		t.Fatalf("expected ErrMigrationInProgress, got %v", err)
	}
}

func TestMigrateCopyFailureCleansUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	copyErr := errors.New("insert failed")
	gomock.InOrder(
		mocks.storage.EXPECT().BeginMigration(gomock.Any(), testTenantID).Return(nil),
		mocks.hybridData.EXPECT().Counts(gomock.Any(), testTenantID).
			Return(map[string]int64{"users": 2, "courses": 1, "enrollments": 2}, nil),
		mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), testTenantID).Return(testBackup(), nil),
		mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil),
		mocks.lifecycle.EXPECT().CreateSchema(gomock.Any(), testTenantID).Return(testSchemaName, nil),
		mocks.lifecycle.EXPECT().MigrateSchema(gomock.Any(), testTenantID).Return(nil),
		mocks.hybridData.EXPECT().Export(gomock.Any(), testTenantID).Return(testDataset(), nil),
		mocks.schemaData.EXPECT().Import(gomock.Any(), testTenantID, gomock.Any()).Return(copyErr),
		mocks.lifecycle.EXPECT().DropSchema(gomock.Any(), testTenantID).Return(nil),
		mocks.storage.EXPECT().FailMigration(gomock.Any(), testTenantID).Return(nil),
		mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), logEntryAtStep(StepCopy)).Return(nil),
	)

	_, err := orchestrator.Migrate(context.Background(), testTenantID)
	if !errors.Is(err, copyErr) {
		t.Fatalf("expected copy error, got %v", err)
	}
}

func TestMigrateValidationFailureCleansUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	failedReport := &validation.Report{
		TenantID: testTenantID,
		Checks: []validation.Check{
			{Name: validation.CheckSchemaStructure, Passed: true},
			{Name: validation.CheckDataMigration, Passed: false, Details: []string{"users: schema holds 1 rows, snapshot recorded 2"}},
			{Name: validation.CheckDataIntegrity, Passed: true},
		},
	}

	mocks.storage.EXPECT().BeginMigration(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Counts(gomock.Any(), testTenantID).
		Return(map[string]int64{"users": 2, "courses": 1, "enrollments": 2}, nil)
	mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), testTenantID).Return(testBackup(), nil)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil)
	mocks.lifecycle.EXPECT().CreateSchema(gomock.Any(), testTenantID).Return(testSchemaName, nil)
	mocks.lifecycle.EXPECT().MigrateSchema(gomock.Any(), testTenantID).Return(nil)
	mocks.hybridData.EXPECT().Export(gomock.Any(), testTenantID).Return(testDataset(), nil)
	mocks.schemaData.EXPECT().Import(gomock.Any(), testTenantID, gomock.Any()).Return(nil)
	mocks.validator.EXPECT().ValidateTenantMigration(gomock.Any(), testTenantID).Return(failedReport, nil)
	mocks.lifecycle.EXPECT().DropSchema(gomock.Any(), testTenantID).Return(nil)
	mocks.storage.EXPECT().FailMigration(gomock.Any(), testTenantID).Return(nil)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), logEntryAtStep(StepValidate)).Return(nil)
	// Purge must never run on a failed migration.

	_, err := orchestrator.Migrate(context.Background(), testTenantID)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestMigrateAllIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	healthy := &types.Tenant{ID: "00000000-0000-4000-8000-000000000001", MigrationStatus: types.MigrationNone}
	broken := &types.Tenant{ID: "00000000-0000-4000-8000-000000000002", MigrationStatus: types.MigrationFailed}
	done := &types.Tenant{ID: "00000000-0000-4000-8000-000000000003", MigrationStatus: types.MigrationCompleted}

	mocks.storage.EXPECT().ListTenants(gomock.Any()).Return([]*types.Tenant{healthy, broken, done}, nil)

	// healthy tenant runs to completion
	mocks.storage.EXPECT().BeginMigration(gomock.Any(), healthy.ID).Return(nil)
	mocks.hybridData.EXPECT().Counts(gomock.Any(), healthy.ID).
		Return(map[string]int64{"users": 1}, nil)
	mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), healthy.ID).Return(testBackup(), nil)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	mocks.lifecycle.EXPECT().CreateSchema(gomock.Any(), healthy.ID).Return("tenant_one", nil)
	mocks.lifecycle.EXPECT().MigrateSchema(gomock.Any(), healthy.ID).Return(nil)
	mocks.hybridData.EXPECT().Export(gomock.Any(), healthy.ID).Return(testDataset(), nil)
	mocks.schemaData.EXPECT().Import(gomock.Any(), healthy.ID, gomock.Any()).Return(nil)
	mocks.validator.EXPECT().ValidateTenantMigration(gomock.Any(), healthy.ID).Return(passedReport(), nil)
	mocks.storage.EXPECT().CompleteMigration(gomock.Any(), healthy.ID, "tenant_one").Return(nil)

	// broken tenant dies on backup, the run keeps going
	mocks.storage.EXPECT().BeginMigration(gomock.Any(), broken.ID).Return(nil)
	mocks.hybridData.EXPECT().Counts(gomock.Any(), broken.ID).
		Return(map[string]int64{"users": 3}, nil)
	mocks.lifecycle.EXPECT().BackupHybrid(gomock.Any(), broken.ID).Return(nil, errors.New("blob store unavailable"))
	mocks.storage.EXPECT().FailMigration(gomock.Any(), broken.ID).Return(nil)

	results, err := orchestrator.MigrateAll(context.Background())
	if err != nil {
		t.Fatalf("MigrateAll returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("healthy tenant failed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("broken tenant reported success")
	}
}

func migratedTenant() *types.Tenant {
	schemaName := testSchemaName
	return &types.Tenant{ID: testTenantID, SchemaName: &schemaName, MigrationStatus: types.MigrationCompleted}
}

func TestRollback(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	gomock.InOrder(
		mocks.storage.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(migratedTenant(), nil),
		mocks.storage.EXPECT().LatestBackupRef(gomock.Any(), testTenantID).Return(testBackupRef, nil),
		mocks.lifecycle.EXPECT().RestoreHybrid(gomock.Any(), testTenantID, testBackupRef).Return(nil),
		mocks.lifecycle.EXPECT().DropSchema(gomock.Any(), testTenantID).Return(nil),
		mocks.storage.EXPECT().MarkRolledBack(gomock.Any(), testTenantID).Return(nil),
		mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil),
	)

	if err := orchestrator.Rollback(context.Background(), testTenantID); err != nil {
		t.Fatalf("Rollback returned error: %v", err)
	}
}

func TestRollbackRejectsUnmigratedTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	inProgress := migratedTenant()
	inProgress.MigrationStatus = types.MigrationInProgress
	mocks.storage.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(inProgress, nil)
	// RestoreHybrid and DropSchema must never run for a tenant that has no
	// completed migration, the live hybrid rows are the source of truth.

	err := orchestrator.Rollback(context.Background(), testTenantID)
	if !errors.Is(err, storage.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRollbackWithoutBackup(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	mocks.storage.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(migratedTenant(), nil)
	mocks.storage.EXPECT().LatestBackupRef(gomock.Any(), testTenantID).Return("", storage.ErrNotFound)

	err := orchestrator.Rollback(context.Background(), testTenantID)
	if !errors.Is(err, ErrNoBackup) {
		t.Fatalf("expected ErrNoBackup, got %v", err)
	}
}

func TestRollbackRestoreFailureKeepsSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator, mocks := testOrchestrator(t, ctrl, Config{})

	restoreErr := errors.New("artifact missing")
	mocks.storage.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(migratedTenant(), nil)
	mocks.storage.EXPECT().LatestBackupRef(gomock.Any(), testTenantID).Return(testBackupRef, nil)
	mocks.lifecycle.EXPECT().RestoreHybrid(gomock.Any(), testTenantID, testBackupRef).Return(restoreErr)
	mocks.storage.EXPECT().AppendMigrationLog(gomock.Any(), gomock.Any()).Return(nil)
	// DropSchema and MarkRolledBack must not run when the restore failed.

	err := orchestrator.Rollback(context.Background(), testTenantID)
	if !errors.Is(err, restoreErr) {
		t.Fatalf("expected restore error, got %v", err)
	}
}

// logEntryAtStep matches a migration log entry recorded at the given step.
func logEntryAtStep(step string) gomock.Matcher {
	return logStepMatcher{step: step}
}

type logStepMatcher struct {
	step string
}

func (m logStepMatcher) Matches(x any) bool {
	entry, ok := x.(*types.MigrationLog)
	return ok && entry.Step == m.step
}

func (m logStepMatcher) String() string {
	return "migration log at step " + m.step
}
