// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sync

import "time"

// Winner names the side a conflict strategy picked.
type Winner int

const (
	WinnerGlobal Winner = iota
	WinnerLocal
)

// ConflictStrategy decides which side wins when a tenant-local copy and the
// global record have diverged. Implementations must be deterministic: the
// same pair of timestamps always yields the same winner.
type ConflictStrategy interface {
	Name() string
	Resolve(localUpdatedAt, globalUpdatedAt time.Time) (Winner, error)
}

// LatestWins picks the most recently updated side. Exactly equal timestamps
// are refused with ErrSyncUndecidable rather than broken by an arbitrary
// coin flip.
type LatestWins struct{}

func (LatestWins) Name() string { return "latest_wins" }

func (LatestWins) Resolve(localUpdatedAt, globalUpdatedAt time.Time) (Winner, error) {
	switch {
	case globalUpdatedAt.After(localUpdatedAt):
		return WinnerGlobal, nil
	case localUpdatedAt.After(globalUpdatedAt):
		return WinnerLocal, nil
	default:
		return 0, ErrSyncUndecidable
	}
}

// GlobalWins always takes the canonical record, local edits included. Meant
// for catalogs where the global side is authoritative by policy.
type GlobalWins struct{}

func (GlobalWins) Name() string { return "global_wins" }

func (GlobalWins) Resolve(_, _ time.Time) (Winner, error) {
	return WinnerGlobal, nil
}
