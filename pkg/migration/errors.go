// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migration

import "errors"

var (
	// ErrEmptyTenant means the tenant has no rows in any hybrid table. An
	// empty footprint is refused rather than silently migrated.
	ErrEmptyTenant = errors.New("tenant has no data to migrate")
	// ErrNoBackup means no snapshot is recorded for the tenant, so a
	// rollback has nothing to restore from.
	ErrNoBackup = errors.New("no backup snapshot recorded for tenant")
	// ErrValidationFailed means post-copy validation rejected the schema.
	// The migration is rolled back; the report carries the offenders.
	ErrValidationFailed = errors.New("migration validation failed")
)
