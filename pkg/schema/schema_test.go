// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import (
	"bytes"
	"testing"
	"time"

	"github.com/alumnify/tenant-isolation/internal/types"
)

func TestName(t *testing.T) {
	testCases := []struct {
		name     string
		tenantID string
		expected string
	}{
		{
			name:     "uuid",
			tenantID: "0191d9a8-7b3c-7d1e-9f00-1234567890ab",
			expected: "tenant_0191d9a8_7b3c_7d1e_9f00_1234567890ab",
		},
		{
			name:     "uppercase normalized",
			tenantID: "0191D9A8-7B3C-7D1E-9F00-1234567890AB",
			expected: "tenant_0191d9a8_7b3c_7d1e_9f00_1234567890ab",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Name(tc.tenantID); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNameDeterministic(t *testing.T) {
	id := "0191d9a8-7b3c-7d1e-9f00-1234567890ab"
	if Name(id) != Name(id) {
		t.Error("schema name derivation must be deterministic")
	}
}

func TestDefaultMigrationSetOrdered(t *testing.T) {
	set := DefaultMigrationSet()
	if len(set) == 0 {
		t.Fatal("expected a non-empty migration set")
	}

	seen := make(map[int64]bool)
	var prev int64
	for _, m := range set {
		if m.Version <= prev {
			t.Errorf("migration versions must be strictly increasing, got %d after %d", m.Version, prev)
		}
		if seen[m.Version] {
			t.Errorf("duplicate migration version %d", m.Version)
		}
		if len(m.Up) == 0 || len(m.Down) == 0 {
			t.Errorf("migration %d (%s) must have up and down statements", m.Version, m.Name)
		}
		seen[m.Version] = true
		prev = m.Version
	}
}

func TestMigrationSetCoversManifest(t *testing.T) {
	// Every table the manifest requires must be created by some migration.
	set := DefaultMigrationSet()
	for table := range RequiredTables {
		found := false
		for _, m := range set {
			for _, stmt := range m.Up {
				if bytes.Contains([]byte(stmt), []byte("%[1]s."+table+" ")) {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("no migration creates required table %s", table)
		}
	}
}

func TestEntityRoundTrip(t *testing.T) {
	custom := "Intro to Go (evening)"
	ds := &Dataset{
		Users: []types.TenantUser{
			{ID: 1, GlobalUserID: "u-1", Email: "a@example.com", Name: "A", LocalUpdatedAt: time.Unix(100, 0).UTC()},
			{ID: 2, GlobalUserID: "u-2", Email: "b@example.com", Name: "B", LocalUpdatedAt: time.Unix(200, 0).UTC()},
		},
		Courses: []types.TenantCourse{
			{ID: 7, GlobalCourseID: "c-1", Code: "GO101", Title: "Intro to Go", CustomTitle: &custom, LocalUpdatedAt: time.Unix(300, 0).UTC()},
		},
		Enrollments: []types.TenantEnrollment{
			{ID: 11, UserID: 1, CourseID: 7, EnrolledAt: time.Unix(400, 0).UTC()},
		},
	}

	for _, entity := range EntityOrder {
		var buf bytes.Buffer
		count, err := encodeEntity(&buf, ds, entity)
		if err != nil {
			t.Fatalf("encode %s failed: %v", entity, err)
		}
		if count != ds.Counts()[entity] {
			t.Errorf("encode %s: expected %d rows, got %d", entity, ds.Counts()[entity], count)
		}

		out := new(Dataset)
		if err := decodeEntity(&buf, out, entity); err != nil {
			t.Fatalf("decode %s failed: %v", entity, err)
		}
		if out.Counts()[entity] != count {
			t.Errorf("decode %s: expected %d rows, got %d", entity, count, out.Counts()[entity])
		}
	}
}

func TestDatasetCounts(t *testing.T) {
	ds := &Dataset{
		Users:       make([]types.TenantUser, 3),
		Courses:     make([]types.TenantCourse, 2),
		Enrollments: make([]types.TenantEnrollment, 6),
	}

	counts := ds.Counts()
	if counts["users"] != 3 || counts["courses"] != 2 || counts["enrollments"] != 6 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if ds.Total() != 11 {
		t.Errorf("expected total 11, got %d", ds.Total())
	}
}

func TestActiveSchemaContext(t *testing.T) {
	ctx := t.Context()

	if _, ok := ActiveSchemaFromContext(ctx); ok {
		t.Error("fresh context must carry no schema")
	}

	bound := ContextWithActiveSchema(ctx, "tenant_a")
	if name, ok := ActiveSchemaFromContext(bound); !ok || name != "tenant_a" {
		t.Errorf("expected tenant_a, got %q (ok=%v)", name, ok)
	}

	// Binding is per context value, the original stays untouched.
	if _, ok := ActiveSchemaFromContext(ctx); ok {
		t.Error("original context must stay unbound")
	}
}

func TestSchemaStoreHonorsBoundSchema(t *testing.T) {
	store := NewSchemaStore(nil)
	tenantID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	if got := store.table(t.Context(), tenantID, "users"); got != `"tenant_7c9e6679_7425_40de_944b_e07fc1f90ae7".users` {
		t.Errorf("unexpected default table: %s", got)
	}

	bound := ContextWithActiveSchema(t.Context(), "tenant_custom")
	if got := store.table(bound, tenantID, "users"); got != `"tenant_custom".users` {
		t.Errorf("bound schema not honored: %s", got)
	}
}

func TestQuoteIdent(t *testing.T) {
	if got := quoteIdent(`tenant_abc`); got != `"tenant_abc"` {
		t.Errorf("unexpected quoting: %s", got)
	}
	if got := quoteIdent(`weird"name`); got != `"weird""name"` {
		t.Errorf("unexpected quoting: %s", got)
	}
}
