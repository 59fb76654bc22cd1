// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/types"
	"github.com/alumnify/tenant-isolation/pkg/schema"
)

//go:generate mockgen -build_flags=--mod=mod -package validation -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package validation -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type serviceMocks struct {
	storage    *MockStorageInterface
	lifecycle  *MockLifecycleInterface
	schemaData *MockSchemaDataInterface
}

func testService(t *testing.T, ctrl *gomock.Controller) (*Service, serviceMocks) {
	t.Helper()

	mocks := serviceMocks{
		storage:    NewMockStorageInterface(ctrl),
		lifecycle:  NewMockLifecycleInterface(ctrl),
		schemaData: NewMockSchemaDataInterface(ctrl),
	}
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().
		Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).
		AnyTimes()

	service := NewService(mocks.storage, mocks.lifecycle, mocks.schemaData, mockTracer, logging.NewNoopLogger())
	return service, mocks
}

func TestValidateTenantMigration(t *testing.T) {
	const tenantID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	manifest := &types.BackupManifest{
		TenantID: tenantID,
		Entities: []types.BackupEntity{
			{Name: "users", RowCount: 4},
			{Name: "courses", RowCount: 2},
			{Name: "enrollments", RowCount: 5},
		},
	}
	matchingCounts := map[string]int64{"users": 4, "courses": 2, "enrollments": 5}

	testCases := []struct {
		name        string
		structure   *schema.StructureReport
		counts      map[string]int64
		orphans     []schema.Orphan
		wantPassed  bool
		failedCheck string
		wantDetail  string
	}{
		{
			name:       "all checks pass",
			structure:  &schema.StructureReport{Valid: true},
			counts:     matchingCounts,
			wantPassed: true,
		},
		{
			name:        "missing table fails structure",
			structure:   &schema.StructureReport{Valid: false, MissingTables: []string{"enrollments"}},
			counts:      matchingCounts,
			failedCheck: CheckSchemaStructure,
			wantDetail:  `missing table "enrollments"`,
		},
		{
			name:        "row count mismatch fails parity",
			structure:   &schema.StructureReport{Valid: true},
			counts:      map[string]int64{"users": 3, "courses": 2, "enrollments": 5},
			failedCheck: CheckDataMigration,
			wantDetail:  "users: schema holds 3 rows, snapshot recorded 4",
		},
		{
			name:      "orphan row fails integrity",
			structure: &schema.StructureReport{Valid: true},
			counts:    matchingCounts,
			orphans: []schema.Orphan{
				{Table: "enrollments", Column: "user_id", RefTable: "users", RowID: 12},
			},
			failedCheck: CheckDataIntegrity,
			wantDetail:  "enrollments.user_id row 12 references missing users row",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, mocks := testService(t, ctrl)

			mocks.lifecycle.EXPECT().ValidateSchema(gomock.Any(), tenantID).Return(testCase.structure, nil)
			mocks.storage.EXPECT().LatestBackupRef(gomock.Any(), tenantID).Return("backups/ref", nil)
			mocks.lifecycle.EXPECT().LoadManifest(gomock.Any(), "backups/ref").Return(manifest, nil)
			mocks.schemaData.EXPECT().Counts(gomock.Any(), tenantID).Return(testCase.counts, nil)
			mocks.schemaData.EXPECT().Orphans(gomock.Any(), tenantID).Return(testCase.orphans, nil)

			report, err := service.ValidateTenantMigration(context.Background(), tenantID)
			if err != nil {
				t.Fatalf("ValidateTenantMigration returned error: %v", err)
			}
			if report.Passed != testCase.wantPassed {
				t.Errorf("report.Passed = %v, want %v", report.Passed, testCase.wantPassed)
			}
			if len(report.Checks) != 3 {
				t.Fatalf("expected 3 checks, got %d", len(report.Checks))
			}
			if testCase.failedCheck == "" {
				return
			}

			check := report.check(testCase.failedCheck)
			if check == nil {
				t.Fatalf("check %q missing from report", testCase.failedCheck)
			}
			if check.Passed {
				t.Errorf("check %q passed, want failure", testCase.failedCheck)
			}
			found := false
			for _, detail := range check.Details {
				if detail == testCase.wantDetail {
					found = true
				}
			}
			if !found {
				t.Errorf("check %q details %v missing %q", testCase.failedCheck, check.Details, testCase.wantDetail)
			}
		})
	}
}

func TestValidateWithoutSnapshot(t *testing.T) {
	const tenantID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	ctrl := gomock.NewController(t)
	service, mocks := testService(t, ctrl)

	mocks.lifecycle.EXPECT().ValidateSchema(gomock.Any(), tenantID).Return(&schema.StructureReport{Valid: true}, nil)
	mocks.storage.EXPECT().LatestBackupRef(gomock.Any(), tenantID).Return("", storage.ErrNotFound)
	mocks.schemaData.EXPECT().Orphans(gomock.Any(), tenantID).Return(nil, nil)

	report, err := service.ValidateTenantMigration(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("ValidateTenantMigration returned error: %v", err)
	}
	if report.Passed {
		t.Error("report passed without a pre-migration snapshot")
	}
	check := report.check(CheckDataMigration)
	if check == nil || check.Passed {
		t.Fatalf("expected data_migration failure, got %+v", check)
	}
}

func TestValidateInfrastructureFailure(t *testing.T) {
	const tenantID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	ctrl := gomock.NewController(t)
	service, mocks := testService(t, ctrl)

	mocks.lifecycle.EXPECT().
		ValidateSchema(gomock.Any(), tenantID).
		Return(nil, errors.New("connection refused"))

	if _, err := service.ValidateTenantMigration(context.Background(), tenantID); err == nil {
		t.Fatal("expected error on infrastructure failure, got nil")
	}
}

func TestGenerateReport(t *testing.T) {
	report := &Report{
		TenantID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		RanAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Passed:   false,
		Checks: []Check{
			{Name: CheckSchemaStructure, Passed: true},
			{Name: CheckDataMigration, Passed: false, Details: []string{"users: schema holds 3 rows, snapshot recorded 4"}},
			{Name: CheckDataIntegrity, Passed: true},
		},
	}

	rendered := GenerateReport(report)
	for _, want := range []string{
		"tenant 7c9e6679-7425-40de-944b-e07fc1f90ae7: FAILED",
		"schema_structure",
		"data_migration",
		"- users: schema holds 3 rows, snapshot recorded 4",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered report missing %q:\n%s", want, rendered)
		}
	}
}
