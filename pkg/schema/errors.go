// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import "errors"

var (
	ErrSchemaAlreadyExists = errors.New("schema already exists")
	ErrSchemaMissing       = errors.New("schema does not exist")
	ErrBackupFailure       = errors.New("backup failed")
	ErrRestoreFailure      = errors.New("restore failed")
)
