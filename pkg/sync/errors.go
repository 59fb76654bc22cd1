// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import "errors"

// ErrSyncUndecidable means the local and global timestamps are exactly equal,
// so neither side can deterministically win. The conflict is surfaced for the
// affected tenant only; other tenants in the same invocation still sync.
var ErrSyncUndecidable = errors.New("conflict timestamps are equal, sync undecidable")
