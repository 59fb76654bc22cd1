// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/alumnify/tenant-isolation/internal/blob"
	"github.com/alumnify/tenant-isolation/internal/db"
	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/monitoring"
	"github.com/alumnify/tenant-isolation/internal/tracing"
)

// StructureReport is the result of checking a schema against the
// required-tables manifest.
type StructureReport struct {
	Valid            bool     `json:"valid"`
	MissingTables    []string `json:"missing_tables"`
	StructuralErrors []string `json:"structural_errors"`
}

// Manager owns the physical per-tenant isolation unit end to end: creation,
// structural migration, validation, backup, restore and removal.
type Manager struct {
	db         db.DBClientInterface
	blob       blob.Store
	hybrid     DataStore
	local      DataStore
	migrations []Migration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewManager(
	dbClient db.DBClientInterface,
	blobStore blob.Store,
	hybrid DataStore,
	local DataStore,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Manager {
	m := new(Manager)

	m.db = dbClient
	m.blob = blobStore
	m.hybrid = hybrid
	m.local = local
	m.migrations = DefaultMigrationSet()

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}

// SwitchTo binds schemaName as the active schema for subsequent work on this
// task. Callers must keep this consistent with the resolved tenant.
func (m *Manager) SwitchTo(ctx context.Context, schemaName string) context.Context {
	return ContextWithActiveSchema(ctx, schemaName)
}

func (m *Manager) SchemaExists(ctx context.Context, schemaName string) (bool, error) {
	var one int
	err := m.db.QueryRowContext(
		ctx,
		"SELECT 1 FROM information_schema.schemata WHERE schema_name = $1",
		schemaName,
	).Scan(&one)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check schema existence: %w", err)
	}
	return true, nil
}

// CreateSchema creates the tenant's schema with its deterministic name.
// A failure leaves no partial schema behind.
func (m *Manager) CreateSchema(ctx context.Context, tenantID string) (string, error) {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.CreateSchema")
	defer span.End()

	name := Name(tenantID)

	exists, err := m.SchemaExists(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrSchemaAlreadyExists, name)
	}

	if _, err := m.db.ExecContext(ctx, "CREATE SCHEMA "+quoteIdent(name)); err != nil {
		// Clean up whatever may have been left behind before surfacing.
		if _, dropErr := m.db.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+quoteIdent(name)+" CASCADE"); dropErr != nil {
			m.logger.Errorf("failed to clean up schema %s: %v", name, dropErr)
		}
		return "", fmt.Errorf("failed to create schema %s: %w", name, err)
	}

	m.logger.Infof("created schema %s for tenant %s", name, tenantID)
	return name, nil
}

// MigrateSchema applies the versioned structural migrations required to bring
// the schema to the current manifest. Already-applied versions are skipped.
func (m *Manager) MigrateSchema(ctx context.Context, tenantID string, set ...[]Migration) error {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.MigrateSchema")
	defer span.End()

	name := Name(tenantID)

	exists, err := m.SchemaExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, name)
	}

	migrations := m.migrations
	if len(set) > 0 {
		migrations = set[0]
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	return m.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := m.db.ExecContext(ctx, fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %[1]s.schema_migrations (
				version BIGINT PRIMARY KEY,
				name TEXT NOT NULL,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, quoteIdent(name))); err != nil {
			return fmt.Errorf("failed to create schema_migrations table: %w", err)
		}

		applied, err := m.appliedVersions(ctx, name)
		if err != nil {
			return err
		}

		for _, mig := range migrations {
			if applied[mig.Version] {
				continue
			}

			for _, stmt := range mig.Up {
				if _, err := m.db.ExecContext(ctx, fmt.Sprintf(stmt, quoteIdent(name))); err != nil {
					return fmt.Errorf("migration %d (%s) failed: %w", mig.Version, mig.Name, err)
				}
			}

			if _, err := m.db.ExecContext(ctx, fmt.Sprintf(
				"INSERT INTO %s.schema_migrations (version, name) VALUES ($1, $2)",
				quoteIdent(name)), mig.Version, mig.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
			}

			m.logger.Debugf("applied migration %d (%s) to schema %s", mig.Version, mig.Name, name)
		}

		return nil
	})
}

func (m *Manager) appliedVersions(ctx context.Context, schemaName string) (map[int64]bool, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT version FROM %s.schema_migrations", quoteIdent(schemaName)))
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]bool)
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// RollbackSchema reverses the most recent N structural migrations. This is
// distinct from data restore.
func (m *Manager) RollbackSchema(ctx context.Context, tenantID string, steps int) error {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.RollbackSchema")
	defer span.End()

	name := Name(tenantID)

	byVersion := make(map[int64]Migration, len(m.migrations))
	for _, mig := range m.migrations {
		byVersion[mig.Version] = mig
	}

	return m.db.WithTx(ctx, func(ctx context.Context) error {
		rows, err := m.db.QueryContext(ctx, fmt.Sprintf(
			"SELECT version FROM %s.schema_migrations ORDER BY version DESC LIMIT $1",
			quoteIdent(name)), steps)
		if err != nil {
			return fmt.Errorf("failed to read applied migrations: %w", err)
		}

		var versions []int64
		for rows.Next() {
			var v int64
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan migration version: %w", err)
			}
			versions = append(versions, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, v := range versions {
			mig, ok := byVersion[v]
			if !ok {
				return fmt.Errorf("no down migration known for version %d", v)
			}

			for _, stmt := range mig.Down {
				if _, err := m.db.ExecContext(ctx, fmt.Sprintf(stmt, quoteIdent(name))); err != nil {
					return fmt.Errorf("rollback of migration %d (%s) failed: %w", mig.Version, mig.Name, err)
				}
			}

			if _, err := m.db.ExecContext(ctx, fmt.Sprintf(
				"DELETE FROM %s.schema_migrations WHERE version = $1",
				quoteIdent(name)), v); err != nil {
				return fmt.Errorf("failed to unrecord migration %d: %w", v, err)
			}

			m.logger.Debugf("rolled back migration %d (%s) on schema %s", mig.Version, mig.Name, name)
		}

		return nil
	})
}

// ValidateSchema checks every table and expected column in the
// required-tables manifest.
func (m *Manager) ValidateSchema(ctx context.Context, tenantID string) (*StructureReport, error) {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.ValidateSchema")
	defer span.End()

	name := Name(tenantID)

	exists, err := m.SchemaExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMissing, name)
	}

	rows, err := m.db.QueryContext(ctx,
		"SELECT table_name, column_name FROM information_schema.columns WHERE table_schema = $1",
		name)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect schema columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]map[string]bool)
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		if columns[table] == nil {
			columns[table] = make(map[string]bool)
		}
		columns[table][column] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report := &StructureReport{Valid: true}
	for _, table := range sortedTables() {
		existing, ok := columns[table]
		if !ok {
			report.Valid = false
			report.MissingTables = append(report.MissingTables, table)
			continue
		}
		for _, col := range RequiredTables[table] {
			if !existing[col] {
				report.Valid = false
				report.StructuralErrors = append(report.StructuralErrors,
					fmt.Sprintf("table %s is missing column %s", table, col))
			}
		}
	}

	return report, nil
}

func sortedTables() []string {
	tables := make([]string, 0, len(RequiredTables))
	for t := range RequiredTables {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// DropSchema irreversibly removes the tenant's schema.
func (m *Manager) DropSchema(ctx context.Context, tenantID string) error {
	ctx, span := m.tracer.Start(ctx, "schema.Manager.DropSchema")
	defer span.End()

	name := Name(tenantID)
	if _, err := m.db.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+quoteIdent(name)+" CASCADE"); err != nil {
		return fmt.Errorf("failed to drop schema %s: %w", name, err)
	}

	m.logger.Infof("dropped schema %s for tenant %s", name, tenantID)
	return nil
}
