// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import (
	"context"
	"time"

	"github.com/alumnify/tenant-isolation/internal/logging"
)

// Worker periodically picks up recently updated global users and fans them
// out to their tenants. It is a safety net behind event-driven syncs: a
// missed notification is repaired on the next sweep.
type Worker struct {
	service  *Service
	storage  StorageInterface
	interval time.Duration
	logger   logging.LoggerInterface
	now      func() time.Time
}

func NewWorker(service *Service, storage StorageInterface, interval time.Duration, logger logging.LoggerInterface) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		service:  service,
		storage:  storage,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run sweeps until the context is canceled. Each sweep covers updates since
// the previous one, with one interval of overlap so a write racing the sweep
// boundary is never missed. Upserts are idempotent, the overlap is harmless.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	since := w.now().Add(-w.interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopped")
			return
		case <-ticker.C:
			next := w.now().Add(-w.interval)
			w.sweep(ctx, since)
			since = next
		}
	}
}

func (w *Worker) sweep(ctx context.Context, since time.Time) {
	users, err := w.storage.ListGlobalUsersUpdatedSince(ctx, since)
	if err != nil {
		w.logger.Errorf("sync sweep: listing updated users: %v", err)
		return
	}
	for _, user := range users {
		if _, err := w.service.SyncUserToTenants(ctx, user); err != nil {
			w.logger.Errorf("sync sweep: user %s: %v", user.ID, err)
		}
	}
	if len(users) > 0 {
		w.logger.Infof("sync sweep propagated %d updated users", len(users))
	}
}
