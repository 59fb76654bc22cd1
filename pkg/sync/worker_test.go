// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/types"
)

func TestSweepPropagatesUpdatedUsers(t *testing.T) {
	user := &types.GlobalUser{ID: "g-1", Email: "ada@acme.test", UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	since := user.UpdatedAt.Add(-time.Minute)

	ctrl := gomock.NewController(t)
	service, mockStorage, mockData := testSyncService(t, ctrl, nil)
	worker := NewWorker(service, mockStorage, time.Minute, logging.NewNoopLogger())

	mockStorage.EXPECT().ListGlobalUsersUpdatedSince(gomock.Any(), since).Return([]*types.GlobalUser{user}, nil)
	mockStorage.EXPECT().ListActiveTenantsForUser(gomock.Any(), user.ID).Return([]*types.Tenant{tenantOne}, nil)
	mockData.EXPECT().GetUserByGlobalID(gomock.Any(), tenantOne.ID, user.ID).Return(nil, nil)
	mockData.EXPECT().UpsertUserFromGlobal(gomock.Any(), tenantOne.ID, user).Return(nil)
	mockStorage.EXPECT().AppendSyncLog(gomock.Any(), gomock.Any()).Return(nil)

	worker.sweep(context.Background(), since)
}

func TestSweepSurvivesListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, mockStorage, _ := testSyncService(t, ctrl, nil)
	worker := NewWorker(service, mockStorage, time.Minute, logging.NewNoopLogger())

	mockStorage.EXPECT().
		ListGlobalUsersUpdatedSince(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	// No sync calls are expected, the sweep logs and waits for the next tick.
	worker.sweep(context.Background(), time.Now())
}
