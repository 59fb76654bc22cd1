// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	fsStore, err := NewFilesystemStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create fs store: %v", err)
	}

	return map[string]Store{
		"fs":     fsStore,
		"memory": NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := "backups/tenant-1/20260901T000000Z/users.jsonl"

			if err := store.Put(ctx, key, strings.NewReader("line1\nline2\n")); err != nil {
				t.Fatalf("put failed: %v", err)
			}

			rc, err := store.Get(ctx, key)
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if string(data) != "line1\nline2\n" {
				t.Errorf("unexpected content: %q", data)
			}
		})
	}
}

func TestStoreAppendOnly(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := "backups/tenant-1/20260901T000000Z/manifest.json"

			if err := store.Put(ctx, key, strings.NewReader("{}")); err != nil {
				t.Fatalf("put failed: %v", err)
			}

			err := store.Put(ctx, key, strings.NewReader("{}"))
			if !errors.Is(err, ErrKeyExists) {
				t.Errorf("expected ErrKeyExists, got %v", err)
			}
		})
	}
}

func TestStoreListByPrefix(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, key := range []string{
				"backups/tenant-1/a/users.jsonl",
				"backups/tenant-1/a/courses.jsonl",
				"backups/tenant-2/a/users.jsonl",
			} {
				if err := store.Put(ctx, key, strings.NewReader("x")); err != nil {
					t.Fatalf("put %s failed: %v", key, err)
				}
			}

			keys, err := store.List(ctx, "backups/tenant-1/")
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(keys) != 2 {
				t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
			}
			// List output is sorted.
			if keys[0] != "backups/tenant-1/a/courses.jsonl" || keys[1] != "backups/tenant-1/a/users.jsonl" {
				t.Errorf("unexpected keys: %v", keys)
			}
		})
	}
}

func TestSanitizeKey(t *testing.T) {
	for _, bad := range []string{"", "  ", "/absolute", "../escape", "a/../../b"} {
		if _, err := sanitizeKey(bad); err == nil {
			t.Errorf("expected error for key %q", bad)
		}
	}
	if _, err := sanitizeKey("backups/t/x.jsonl"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
