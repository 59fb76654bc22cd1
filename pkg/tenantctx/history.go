// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"sync"
	"time"
)

// SwitchEntry records one tenant context switch.
type SwitchEntry struct {
	TenantID string
	At       time.Time
}

// SwitchHistory is a bounded, append-only record of tenant context switches,
// kept for auditing and debugging.
type SwitchHistory struct {
	mu      sync.Mutex
	cap     int
	entries []SwitchEntry
}

func NewSwitchHistory(capacity int) *SwitchHistory {
	if capacity <= 0 {
		capacity = 128
	}
	return &SwitchHistory{cap: capacity}
}

func (h *SwitchHistory) Append(tenantID string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, SwitchEntry{TenantID: tenantID, At: at})
	if len(h.entries) > h.cap {
		h.entries = h.entries[len(h.entries)-h.cap:]
	}
}

// Snapshot returns a copy of the recorded switches, oldest first.
func (h *SwitchHistory) Snapshot() []SwitchEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]SwitchEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
