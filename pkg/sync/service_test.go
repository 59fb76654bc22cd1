// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sync -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var (
	schemaOne = "tenant_00000000_0000_4000_8000_000000000001"
	schemaTwo = "tenant_00000000_0000_4000_8000_000000000002"

	tenantOne    = &types.Tenant{ID: "00000000-0000-4000-8000-000000000001", SchemaName: &schemaOne, MigrationStatus: types.MigrationCompleted}
	tenantTwo    = &types.Tenant{ID: "00000000-0000-4000-8000-000000000002", SchemaName: &schemaTwo, MigrationStatus: types.MigrationCompleted}
	tenantHybrid = &types.Tenant{ID: "00000000-0000-4000-8000-000000000003", MigrationStatus: types.MigrationNone}
)

func testSyncService(t *testing.T, ctrl *gomock.Controller, strategy ConflictStrategy) (*Service, *MockStorageInterface, *MockTenantDataInterface) {
	t.Helper()

	mockStorage := NewMockStorageInterface(ctrl)
	mockData := NewMockTenantDataInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().
		Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).
		AnyTimes()

	service := NewService(mockStorage, mockData, strategy, mockTracer, logging.NewNoopLogger())
	return service, mockStorage, mockData
}

func TestSyncUserToTenants(t *testing.T) {
	user := &types.GlobalUser{ID: "g-1", Email: "ada@acme.test", UpdatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}

	ctrl := gomock.NewController(t)
	service, mockStorage, mockData := testSyncService(t, ctrl, nil)

	mockStorage.EXPECT().
		ListActiveTenantsForUser(gomock.Any(), user.ID).
		Return([]*types.Tenant{tenantOne, tenantHybrid, tenantTwo}, nil)

	// tenantOne has no local copy yet, plain insert.
	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantOne.ID, user.ID).Return(nil, nil)
	mockData.EXPECT().UpsertUserFromGlobal(gomock.Any(), tenantOne.ID, user).Return(nil)

	// tenantTwo has a stale local copy, an ordinary upsert refreshes it.
	stale := &types.TenantUser{ID: 7, GlobalUserID: user.ID, LocalUpdatedAt: user.UpdatedAt.Add(-time.Hour)}
	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantTwo.ID, user.ID).Return(stale, nil)
	mockData.EXPECT().UpsertUserFromGlobal(gomock.Any(), tenantTwo.ID, user).Return(nil)

	var logged *types.SyncLog
	mockStorage.EXPECT().
		AppendSyncLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *types.SyncLog) error {
			logged = entry
			return nil
		})

	result, err := service.SyncUserToTenants(context.Background(), user)
	if err != nil {
		t.Fatalf("SyncUserToTenants returned error: %v", err)
	}
	if !result.Success {
		t.Error("result.Success = false, want true")
	}
	if result.SyncedCount != 2 {
		t.Errorf("result.SyncedCount = %d, want 2", result.SyncedCount)
	}
	if result.ConflictsResolved != 0 {
		t.Errorf("a stale local row is not a conflict, result.ConflictsResolved = %d, want 0", result.ConflictsResolved)
	}
	if len(result.PerTenant) != 2 {
		t.Fatalf("expected 2 per-tenant outcomes, hybrid tenant must be skipped, got %d", len(result.PerTenant))
	}

	if logged == nil {
		t.Fatal("no sync log appended")
	}
	if logged.Operation != "sync_user" || logged.SourceID != user.ID || len(logged.TenantIDs) != 2 {
		t.Errorf("unexpected sync log: %+v", logged)
	}
}

func TestSyncUserLocalEditWins(t *testing.T) {
	user := &types.GlobalUser{ID: "g-1", UpdatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}

	ctrl := gomock.NewController(t)
	service, mockStorage, mockData := testSyncService(t, ctrl, nil)

	mockStorage.EXPECT().
		ListActiveTenantsForUser(gomock.Any(), user.ID).
		Return([]*types.Tenant{tenantOne}, nil)

	fresher := &types.TenantUser{ID: 7, GlobalUserID: user.ID, LocalUpdatedAt: user.UpdatedAt.Add(time.Hour)}
	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantOne.ID, user.ID).Return(fresher, nil)
	// No upsert: the local edit is newer and must survive.
	mockStorage.EXPECT().AppendSyncLog(gomock.Any(), gomock.Any()).Return(nil)

	result, err := service.SyncUserToTenants(context.Background(), user)
	if err != nil {
		t.Fatalf("SyncUserToTenants returned error: %v", err)
	}
	if result.SyncedCount != 0 {
		t.Errorf("result.SyncedCount = %d, want 0", result.SyncedCount)
	}
	if result.ConflictsResolved != 1 {
		t.Errorf("result.ConflictsResolved = %d, want 1", result.ConflictsResolved)
	}
	if !result.Success {
		t.Error("local win is a resolved conflict, not a failure")
	}
}

func TestSyncUserRepeatIsNoOpSuccess(t *testing.T) {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	user := &types.GlobalUser{ID: "g-1", UpdatedAt: at}

	ctrl := gomock.NewController(t)
	service, mockStorage, mockData := testSyncService(t, ctrl, nil)

	mockStorage.EXPECT().
		ListActiveTenantsForUser(gomock.Any(), user.ID).
		Return([]*types.Tenant{tenantOne}, nil)

	// A previous sync leaves the local timestamp equal to the global one.
	// Re-syncing such a row is a plain idempotent upsert, not a conflict.
	tied := &types.TenantUser{ID: 7, GlobalUserID: user.ID, LocalUpdatedAt: at}
	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantOne.ID, user.ID).Return(tied, nil)
	mockData.EXPECT().UpsertUserFromGlobal(gomock.Any(), tenantOne.ID, user).Return(nil)
	mockStorage.EXPECT().AppendSyncLog(gomock.Any(), gomock.Any()).Return(nil)

	result, err := service.SyncUserToTenants(context.Background(), user)
	if err != nil {
		t.Fatalf("SyncUserToTenants returned error: %v", err)
	}
	if !result.Success {
		t.Errorf("re-syncing an already synced row failed: %+v", result.PerTenant)
	}
	if result.SyncedCount != 1 {
		t.Errorf("result.SyncedCount = %d, want 1", result.SyncedCount)
	}
	if result.ConflictsResolved != 0 {
		t.Errorf("result.ConflictsResolved = %d, want 0", result.ConflictsResolved)
	}
}

func TestSyncUserTenantFailureIsolated(t *testing.T) {
	user := &types.GlobalUser{ID: "g-1", UpdatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}

	ctrl := gomock.NewController(t)
	service, mockStorage, mockData := testSyncService(t, ctrl, nil)

	mockStorage.EXPECT().
		ListActiveTenantsForUser(gomock.Any(), user.ID).
		Return([]*types.Tenant{tenantOne, tenantTwo}, nil)

	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantOne.ID, user.ID).Return(nil, errors.New("schema unreachable"))
	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantTwo.ID, user.ID).Return(nil, nil)
	mockData.EXPECT().UpsertUserFromGlobal(gomock.Any(), tenantTwo.ID, user).Return(nil)

	var logged *types.SyncLog
	mockStorage.EXPECT().
		AppendSyncLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *types.SyncLog) error {
			logged = entry
			return nil
		})

	result, err := service.SyncUserToTenants(context.Background(), user)
	if err != nil {
		t.Fatalf("SyncUserToTenants returned error: %v", err)
	}
	if result.Success {
		t.Error("result.Success = true, want false")
	}
	if result.SyncedCount != 1 {
		t.Errorf("result.SyncedCount = %d, want 1", result.SyncedCount)
	}
	if logged.Status != "partial" {
		t.Errorf("sync log status = %q, want partial", logged.Status)
	}
}

func TestSyncCourseToTenant(t *testing.T) {
	course := &types.GlobalCourse{ID: "c-1", Code: "GO-101", Title: "Intro", UpdatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}

	ctrl := gomock.NewController(t)
	service, mockStorage, mockData := testSyncService(t, ctrl, nil)

	customTitle := "Go for Alumni"
	local := &types.TenantCourse{
		ID:             4,
		GlobalCourseID: course.ID,
		CustomTitle:    &customTitle,
		LocalUpdatedAt: course.UpdatedAt.Add(-time.Hour),
	}

	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantOne.ID).Return(tenantOne, nil)
	mockData.EXPECT().GetCourseByGlobalID(gomock.Any(), tenantOne.ID, course.ID).Return(local, nil)
	mockData.EXPECT().UpsertCourseFromGlobal(gomock.Any(), tenantOne.ID, course).Return(nil)
	mockStorage.EXPECT().AppendSyncLog(gomock.Any(), gomock.Any()).Return(nil)

	if err := service.SyncCourseToTenant(context.Background(), course, tenantOne.ID); err != nil {
		t.Fatalf("SyncCourseToTenant returned error: %v", err)
	}
}

func TestSyncCourseSkipsHybridTenant(t *testing.T) {
	course := &types.GlobalCourse{ID: "c-1", UpdatedAt: time.Now()}

	ctrl := gomock.NewController(t)
	service, mockStorage, _ := testSyncService(t, ctrl, nil)

	mockStorage.EXPECT().GetTenantByID(gomock.Any(), tenantHybrid.ID).Return(tenantHybrid, nil)

	if err := service.SyncCourseToTenant(context.Background(), course, tenantHybrid.ID); err != nil {
		t.Fatalf("SyncCourseToTenant returned error: %v", err)
	}
}

func TestConflictStrategies(t *testing.T) {
	earlier := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Minute)

	testCases := []struct {
		name     string
		strategy ConflictStrategy
		local    time.Time
		global   time.Time
		want     Winner
		wantErr  error
	}{
		{name: "latest wins picks newer global", strategy: LatestWins{}, local: earlier, global: later, want: WinnerGlobal},
		{name: "latest wins picks newer local", strategy: LatestWins{}, local: later, global: earlier, want: WinnerLocal},
		{name: "latest wins refuses tie", strategy: LatestWins{}, local: earlier, global: earlier, wantErr: ErrSyncUndecidable},
		{name: "global wins ignores newer local", strategy: GlobalWins{}, local: later, global: earlier, want: WinnerGlobal},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := testCase.strategy.Resolve(testCase.local, testCase.global)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("Resolve error = %v, want %v", err, testCase.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != testCase.want {
				t.Errorf("Resolve = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestConflictStrategiesDeterministic(t *testing.T) {
	local := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	global := local.Add(time.Second)

	first, err := LatestWins{}.Resolve(local, global)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := LatestWins{}.Resolve(local, global)
		if err != nil || again != first {
			t.Fatalf("Resolve not deterministic: run %d gave %v, %v", i, again, err)
		}
	}
}
