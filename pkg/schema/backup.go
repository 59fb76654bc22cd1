// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/alumnify/tenant-isolation/internal/types"
)

const backupTimeLayout = "20060102T150405.000Z"

// Backup references one persisted snapshot.
type Backup struct {
	Ref      string
	Manifest *types.BackupManifest
}

// BackupHybrid snapshots the tenant's rows from the legacy shared tables.
// This is the snapshot a migration takes before touching anything.
func (m *Manager) BackupHybrid(ctx context.Context, tenantID string) (*Backup, error) {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.BackupHybrid")
	defer span.End()

	return m.backup(ctx, tenantID, m.hybrid)
}

// BackupSchema snapshots the tenant's rows from its isolated schema.
func (m *Manager) BackupSchema(ctx context.Context, tenantID string) (*Backup, error) {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.BackupSchema")
	defer span.End()

	ctx = m.SwitchTo(ctx, Name(tenantID))
	return m.backup(ctx, tenantID, m.local)
}

// backup serializes every entity into one artifact per type under a tenant-
// and timestamp-scoped location, then writes the manifest. Artifacts are
// never mutated after creation.
func (m *Manager) backup(ctx context.Context, tenantID string, store DataStore) (*Backup, error) {
	ds, err := store.Export(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupFailure, err)
	}

	takenAt := time.Now().UTC()
	ref := path.Join("backups", tenantID, takenAt.Format(backupTimeLayout))

	manifest := &types.BackupManifest{
		TenantID: tenantID,
		TakenAt:  takenAt,
	}

	for _, entity := range EntityOrder {
		var buf bytes.Buffer
		count, err := encodeEntity(&buf, ds, entity)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackupFailure, err)
		}

		key := path.Join(ref, entity+".jsonl")
		if err := m.blob.Put(ctx, key, &buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackupFailure, err)
		}

		manifest.Entities = append(manifest.Entities, types.BackupEntity{
			Name:     entity,
			Artifact: key,
			RowCount: count,
		})
	}

	raw, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupFailure, err)
	}
	if err := m.blob.Put(ctx, path.Join(ref, "manifest.json"), bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupFailure, err)
	}

	m.logger.Infof("persisted backup %s for tenant %s (%d rows)", ref, tenantID, ds.Total())
	return &Backup{Ref: ref, Manifest: manifest}, nil
}

// LoadManifest reads a snapshot's manifest from the blob store.
func (m *Manager) LoadManifest(ctx context.Context, ref string) (*types.BackupManifest, error) {
	rc, err := m.blob.Get(ctx, path.Join(ref, "manifest.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load backup manifest %s: %w", ref, err)
	}
	defer rc.Close()

	var manifest types.BackupManifest
	if err := json.NewDecoder(rc).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to decode backup manifest %s: %w", ref, err)
	}
	return &manifest, nil
}

// RestoreSchema truncates the tenant schema's tables and replays the
// snapshot. Row counts and values must match the snapshot exactly.
func (m *Manager) RestoreSchema(ctx context.Context, tenantID, ref string) error {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.RestoreSchema")
	defer span.End()

	ctx = m.SwitchTo(ctx, Name(tenantID))
	return m.restore(ctx, tenantID, ref, m.local)
}

// RestoreHybrid replays a snapshot back into the legacy shared tables. Used
// by migration rollback.
func (m *Manager) RestoreHybrid(ctx context.Context, tenantID, ref string) error {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.RestoreHybrid")
	defer span.End()

	return m.restore(ctx, tenantID, ref, m.hybrid)
}

func (m *Manager) restore(ctx context.Context, tenantID, ref string, store DataStore) error {
	manifest, err := m.LoadManifest(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRestoreFailure, err)
	}

	ds := new(Dataset)
	for _, entity := range manifest.Entities {
		rc, err := m.blob.Get(ctx, entity.Artifact)
		if err != nil {
			return fmt.Errorf("%w: missing artifact %s: %v", ErrRestoreFailure, entity.Artifact, err)
		}
		if err := decodeEntity(rc, ds, entity.Name); err != nil {
			rc.Close()
			return fmt.Errorf("%w: %v", ErrRestoreFailure, err)
		}
		rc.Close()
	}

	err = m.db.WithTx(ctx, func(ctx context.Context) error {
		if err := store.Purge(ctx, tenantID); err != nil {
			return err
		}
		if err := store.Import(ctx, tenantID, ds); err != nil {
			return err
		}

		counts, err := store.Counts(ctx, tenantID)
		if err != nil {
			return err
		}
		for entity, want := range manifest.Counts() {
			if counts[entity] != want {
				return fmt.Errorf("replayed %d %s rows, snapshot has %d", counts[entity], entity, want)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRestoreFailure, err)
	}

	m.logger.Infof("restored backup %s for tenant %s", ref, tenantID)
	return nil
}

func encodeEntity(w io.Writer, ds *Dataset, entity string) (int64, error) {
	enc := json.NewEncoder(w)
	switch entity {
	case "users":
		for _, row := range ds.Users {
			if err := enc.Encode(row); err != nil {
				return 0, err
			}
		}
		return int64(len(ds.Users)), nil
	case "courses":
		for _, row := range ds.Courses {
			if err := enc.Encode(row); err != nil {
				return 0, err
			}
		}
		return int64(len(ds.Courses)), nil
	case "enrollments":
		for _, row := range ds.Enrollments {
			if err := enc.Encode(row); err != nil {
				return 0, err
			}
		}
		return int64(len(ds.Enrollments)), nil
	}
	return 0, fmt.Errorf("unknown entity %q", entity)
}

func decodeEntity(r io.Reader, ds *Dataset, entity string) error {
	dec := json.NewDecoder(r)
	for {
		switch entity {
		case "users":
			var row types.TenantUser
			if err := dec.Decode(&row); err == io.EOF {
				return nil
			} else if err != nil {
				return err
			}
			ds.Users = append(ds.Users, row)
		case "courses":
			var row types.TenantCourse
			if err := dec.Decode(&row); err == io.EOF {
				return nil
			} else if err != nil {
				return err
			}
			ds.Courses = append(ds.Courses, row)
		case "enrollments":
			var row types.TenantEnrollment
			if err := dec.Decode(&row); err == io.EOF {
				return nil
			} else if err != nil {
				return err
			}
			ds.Enrollments = append(ds.Enrollments, row)
		default:
			return fmt.Errorf("unknown entity %q", entity)
		}
	}
}
