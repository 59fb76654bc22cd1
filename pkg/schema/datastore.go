// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alumnify/tenant-isolation/internal/db"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/types"
)

// Dataset holds one tenant's rows for every entity type, in memory, in
// dependency order.
type Dataset struct {
	Users       []types.TenantUser       `json:"users"`
	Courses     []types.TenantCourse     `json:"courses"`
	Enrollments []types.TenantEnrollment `json:"enrollments"`
}

// Counts returns per-entity row counts of the dataset.
func (d *Dataset) Counts() map[string]int64 {
	return map[string]int64{
		"users":       int64(len(d.Users)),
		"courses":     int64(len(d.Courses)),
		"enrollments": int64(len(d.Enrollments)),
	}
}

// Total returns the tenant's data footprint.
func (d *Dataset) Total() int64 {
	return int64(len(d.Users) + len(d.Courses) + len(d.Enrollments))
}

// DataStore is one of the two storage backends a tenant's data can live in
// during the migration window: the legacy shared tables or the isolated
// schema. Only the migration orchestrator moves data between the two.
type DataStore interface {
	Export(ctx context.Context, tenantID string) (*Dataset, error)
	Import(ctx context.Context, tenantID string, ds *Dataset) error
	Counts(ctx context.Context, tenantID string) (map[string]int64, error)
	Purge(ctx context.Context, tenantID string) error
}

// HybridStore reads and writes the legacy shared tables, scoped by the
// tenant_id column.
type HybridStore struct {
	db db.DBClientInterface
}

var _ DataStore = (*HybridStore)(nil)

func NewHybridStore(dbClient db.DBClientInterface) *HybridStore {
	return &HybridStore{db: dbClient}
}

func (h *HybridStore) Export(ctx context.Context, tenantID string) (*Dataset, error) {
	ds := new(Dataset)

	rows, err := h.db.Statement(ctx).
		Select("id", "global_user_id", "email", "name", "local_updated_at").
		From("hybrid_users").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("id").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export hybrid users: %w", err)
	}
	for rows.Next() {
		var u types.TenantUser
		if err := rows.Scan(&u.ID, &u.GlobalUserID, &u.Email, &u.Name, &u.LocalUpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan hybrid user: %w", err)
		}
		ds.Users = append(ds.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.db.Statement(ctx).
		Select("id", "global_course_id", "code", "title", "custom_title", "custom_settings", "local_updated_at").
		From("hybrid_courses").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("id").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export hybrid courses: %w", err)
	}
	for rows.Next() {
		var c types.TenantCourse
		var settings []byte
		if err := rows.Scan(&c.ID, &c.GlobalCourseID, &c.Code, &c.Title, &c.CustomTitle, &settings, &c.LocalUpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan hybrid course: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &c.CustomSettings); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to decode course settings: %w", err)
			}
		}
		ds.Courses = append(ds.Courses, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.db.Statement(ctx).
		Select("id", "user_id", "course_id", "enrolled_at").
		From("hybrid_enrollments").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("id").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export hybrid enrollments: %w", err)
	}
	for rows.Next() {
		var e types.TenantEnrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan hybrid enrollment: %w", err)
		}
		ds.Enrollments = append(ds.Enrollments, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}

// importError makes constraint violations during a dataset replay readable:
// a duplicate key means the target table was not empty, a foreign key
// violation means the snapshot itself is inconsistent.
func importError(entity string, id int64, err error) error {
	if storage.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to import %s %d, target table already holds this row: %w", entity, id, storage.ErrDuplicateKey)
	}
	if storage.IsForeignKeyViolation(err) {
		return fmt.Errorf("failed to import %s %d, snapshot references a missing row: %w", entity, id, storage.ErrForeignKeyViolation)
	}
	return fmt.Errorf("failed to import %s %d: %w", entity, id, err)
}

func (h *HybridStore) Import(ctx context.Context, tenantID string, ds *Dataset) error {
	for _, u := range ds.Users {
		_, err := h.db.Statement(ctx).
			Insert("hybrid_users").
			Columns("id", "tenant_id", "global_user_id", "email", "name", "local_updated_at").
			Values(u.ID, tenantID, u.GlobalUserID, u.Email, u.Name, u.LocalUpdatedAt).
			ExecContext(ctx)
		if err != nil {
			return importError("hybrid user", u.ID, err)
		}
	}

	for _, c := range ds.Courses {
		settings, err := json.Marshal(c.CustomSettings)
		if err != nil {
			return fmt.Errorf("failed to encode course settings: %w", err)
		}
		if c.CustomSettings == nil {
			settings = []byte("{}")
		}
		_, err = h.db.Statement(ctx).
			Insert("hybrid_courses").
			Columns("id", "tenant_id", "global_course_id", "code", "title", "custom_title", "custom_settings", "local_updated_at").
			Values(c.ID, tenantID, c.GlobalCourseID, c.Code, c.Title, c.CustomTitle, settings, c.LocalUpdatedAt).
			ExecContext(ctx)
		if err != nil {
			return importError("hybrid course", c.ID, err)
		}
	}

	for _, e := range ds.Enrollments {
		_, err := h.db.Statement(ctx).
			Insert("hybrid_enrollments").
			Columns("id", "tenant_id", "user_id", "course_id", "enrolled_at").
			Values(e.ID, tenantID, e.UserID, e.CourseID, e.EnrolledAt).
			ExecContext(ctx)
		if err != nil {
			return importError("hybrid enrollment", e.ID, err)
		}
	}

	for _, table := range []string{"hybrid_users", "hybrid_courses", "hybrid_enrollments"} {
		if err := resetIdentity(ctx, h.db, table); err != nil {
			return err
		}
	}

	return nil
}

func (h *HybridStore) Counts(ctx context.Context, tenantID string) (map[string]int64, error) {
	counts := make(map[string]int64, len(EntityOrder))
	for entity, table := range map[string]string{
		"users":       "hybrid_users",
		"courses":     "hybrid_courses",
		"enrollments": "hybrid_enrollments",
	} {
		var n int64
		err := h.db.Statement(ctx).
			Select("COUNT(*)").
			From(table).
			Where(sq.Eq{"tenant_id": tenantID}).
			QueryRowContext(ctx).
			Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[entity] = n
	}
	return counts, nil
}

// Purge deletes the tenant's rows, children first.
func (h *HybridStore) Purge(ctx context.Context, tenantID string) error {
	for _, table := range []string{"hybrid_enrollments", "hybrid_courses", "hybrid_users"} {
		_, err := h.db.Statement(ctx).
			Delete(table).
			Where(sq.Eq{"tenant_id": tenantID}).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge %s: %w", table, err)
		}
	}
	return nil
}

// SchemaStore reads and writes the tenant's isolated schema. Every statement
// names its target schema explicitly.
type SchemaStore struct {
	db db.DBClientInterface
}

var _ DataStore = (*SchemaStore)(nil)

func NewSchemaStore(dbClient db.DBClientInterface) *SchemaStore {
	return &SchemaStore{db: dbClient}
}

// schemaFor prefers the schema bound to the context over the tenant's
// deterministic name, so work started through SwitchTo stays on that schema.
func (s *SchemaStore) schemaFor(ctx context.Context, tenantID string) string {
	if name, ok := ActiveSchemaFromContext(ctx); ok {
		return name
	}
	return Name(tenantID)
}

func (s *SchemaStore) table(ctx context.Context, tenantID, table string) string {
	return quoteIdent(s.schemaFor(ctx, tenantID)) + "." + table
}

func (s *SchemaStore) Export(ctx context.Context, tenantID string) (*Dataset, error) {
	ds := new(Dataset)

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, global_user_id, email, name, local_updated_at FROM %s ORDER BY id",
		s.table(ctx, tenantID, "users")))
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	for rows.Next() {
		var u types.TenantUser
		if err := rows.Scan(&u.ID, &u.GlobalUserID, &u.Email, &u.Name, &u.LocalUpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		ds.Users = append(ds.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, global_course_id, code, title, custom_title, custom_settings, local_updated_at FROM %s ORDER BY id",
		s.table(ctx, tenantID, "courses")))
	if err != nil {
		return nil, fmt.Errorf("failed to export courses: %w", err)
	}
	for rows.Next() {
		var c types.TenantCourse
		var settings []byte
		if err := rows.Scan(&c.ID, &c.GlobalCourseID, &c.Code, &c.Title, &c.CustomTitle, &settings, &c.LocalUpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &c.CustomSettings); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to decode course settings: %w", err)
			}
		}
		ds.Courses = append(ds.Courses, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, user_id, course_id, enrolled_at FROM %s ORDER BY id",
		s.table(ctx, tenantID, "enrollments")))
	if err != nil {
		return nil, fmt.Errorf("failed to export enrollments: %w", err)
	}
	for rows.Next() {
		var e types.TenantEnrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrolledAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		ds.Enrollments = append(ds.Enrollments, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}

func (s *SchemaStore) Import(ctx context.Context, tenantID string, ds *Dataset) error {
	for _, u := range ds.Users {
		_, err := s.db.ExecContext(ctx, fmt.Sprintf(
			"INSERT INTO %s (id, global_user_id, email, name, local_updated_at) VALUES ($1, $2, $3, $4, $5)",
			s.table(ctx, tenantID, "users")),
			u.ID, u.GlobalUserID, u.Email, u.Name, u.LocalUpdatedAt)
		if err != nil {
			return importError("user", u.ID, err)
		}
	}

	for _, c := range ds.Courses {
		settings, err := json.Marshal(c.CustomSettings)
		if err != nil {
			return fmt.Errorf("failed to encode course settings: %w", err)
		}
		if c.CustomSettings == nil {
			settings = []byte("{}")
		}
		_, err = s.db.ExecContext(ctx, fmt.Sprintf(
			"INSERT INTO %s (id, global_course_id, code, title, custom_title, custom_settings, local_updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
			s.table(ctx, tenantID, "courses")),
			c.ID, c.GlobalCourseID, c.Code, c.Title, c.CustomTitle, settings, c.LocalUpdatedAt)
		if err != nil {
			return importError("course", c.ID, err)
		}
	}

	for _, e := range ds.Enrollments {
		_, err := s.db.ExecContext(ctx, fmt.Sprintf(
			"INSERT INTO %s (id, user_id, course_id, enrolled_at) VALUES ($1, $2, $3, $4)",
			s.table(ctx, tenantID, "enrollments")),
			e.ID, e.UserID, e.CourseID, e.EnrolledAt)
		if err != nil {
			return importError("enrollment", e.ID, err)
		}
	}

	for _, table := range EntityOrder {
		if err := resetIdentity(ctx, s.db, s.table(ctx, tenantID, table)); err != nil {
			return err
		}
	}

	return nil
}

func (s *SchemaStore) Counts(ctx context.Context, tenantID string) (map[string]int64, error) {
	counts := make(map[string]int64, len(EntityOrder))
	for _, entity := range EntityOrder {
		var n int64
		err := s.db.QueryRowContext(ctx,
			fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table(ctx, tenantID, entity)),
		).Scan(&n)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", entity, err)
		}
		counts[entity] = n
	}
	return counts, nil
}

func (s *SchemaStore) Purge(ctx context.Context, tenantID string) error {
	// Children first, reverse dependency order.
	for i := len(EntityOrder) - 1; i >= 0; i-- {
		_, err := s.db.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s", s.table(ctx, tenantID, EntityOrder[i])))
		if err != nil {
			return fmt.Errorf("failed to purge %s: %w", EntityOrder[i], err)
		}
	}
	return nil
}

// RecordIDTranslations retains the old-to-new primary key mapping produced by
// an ID remap during data copy.
func (s *SchemaStore) RecordIDTranslations(ctx context.Context, tenantID string, translations map[string]map[int64]int64) error {
	for entity, mapping := range translations {
		for oldID, newID := range mapping {
			_, err := s.db.ExecContext(ctx, fmt.Sprintf(
				"INSERT INTO %s (entity, old_id, new_id) VALUES ($1, $2, $3)",
				s.table(ctx, tenantID, "id_translations")),
				entity, oldID, newID)
			if err != nil {
				return fmt.Errorf("failed to record id translation: %w", err)
			}
		}
	}
	return nil
}

// Orphan names a child row whose foreign key does not resolve inside the same
// schema.
type Orphan struct {
	Table    string
	Column   string
	RefTable string
	RowID    int64
}

func (o Orphan) String() string {
	return fmt.Sprintf("%s.%s row %d references missing %s row", o.Table, o.Column, o.RowID, o.RefTable)
}

// Orphans returns every child row with a dangling foreign key. A fully
// migrated schema returns none.
func (s *SchemaStore) Orphans(ctx context.Context, tenantID string) ([]Orphan, error) {
	checks := []struct {
		table, column, refTable string
	}{
		{"enrollments", "user_id", "users"},
		{"enrollments", "course_id", "courses"},
	}

	var orphans []Orphan
	for _, c := range checks {
		rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
			"SELECT child.id FROM %s child LEFT JOIN %s parent ON child.%s = parent.id WHERE parent.id IS NULL",
			s.table(ctx, tenantID, c.table), s.table(ctx, tenantID, c.refTable), c.column))
		if err != nil {
			return nil, fmt.Errorf("failed to check orphans in %s.%s: %w", c.table, c.column, err)
		}
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan orphan row: %w", err)
			}
			orphans = append(orphans, Orphan{Table: c.table, Column: c.column, RefTable: c.refTable, RowID: id})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return orphans, nil
}

// GetUserByGlobalID returns the tenant-local copy of a global user, or nil
// when none has been materialized yet.
func (s *SchemaStore) GetUserByGlobalID(ctx context.Context, tenantID, globalUserID string) (*types.TenantUser, error) {
	var u types.TenantUser
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT id, global_user_id, email, name, local_updated_at FROM %s WHERE global_user_id = $1",
		s.table(ctx, tenantID, "users")), globalUserID).
		Scan(&u.ID, &u.GlobalUserID, &u.Email, &u.Name, &u.LocalUpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant user: %w", err)
	}
	return &u, nil
}

// UpsertUserFromGlobal materializes a global user into the tenant schema,
// keyed by the global id.
func (s *SchemaStore) UpsertUserFromGlobal(ctx context.Context, tenantID string, u *types.GlobalUser) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (global_user_id, email, name, local_updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (global_user_id) DO UPDATE
		 SET email = EXCLUDED.email, name = EXCLUDED.name, local_updated_at = EXCLUDED.local_updated_at`,
		s.table(ctx, tenantID, "users")),
		u.ID, u.Email, u.Name, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert tenant user: %w", err)
	}
	return nil
}

// GetCourseByGlobalID returns the tenant-local offering of a global course,
// or nil when none exists.
func (s *SchemaStore) GetCourseByGlobalID(ctx context.Context, tenantID, globalCourseID string) (*types.TenantCourse, error) {
	var c types.TenantCourse
	var settings []byte
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT id, global_course_id, code, title, custom_title, custom_settings, local_updated_at FROM %s WHERE global_course_id = $1",
		s.table(ctx, tenantID, "courses")), globalCourseID).
		Scan(&c.ID, &c.GlobalCourseID, &c.Code, &c.Title, &c.CustomTitle, &settings, &c.LocalUpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant course: %w", err)
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &c.CustomSettings); err != nil {
			return nil, fmt.Errorf("failed to decode course settings: %w", err)
		}
	}
	return &c, nil
}

// UpsertCourseFromGlobal materializes a global course into the tenant schema.
// Tenant-owned custom_title and custom_settings are never overwritten.
func (s *SchemaStore) UpsertCourseFromGlobal(ctx context.Context, tenantID string, c *types.GlobalCourse) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (global_course_id, code, title, local_updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (global_course_id) DO UPDATE
		 SET code = EXCLUDED.code, title = EXCLUDED.title, local_updated_at = EXCLUDED.local_updated_at`,
		s.table(ctx, tenantID, "courses")),
		c.ID, c.Code, c.Title, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert tenant course: %w", err)
	}
	return nil
}

// resetIdentity realigns a table's identity sequence after rows were inserted
// with explicit primary keys.
func resetIdentity(ctx context.Context, dbClient db.DBClientInterface, table string) error {
	_, err := dbClient.ExecContext(ctx, fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
		table, table))
	if err != nil {
		return fmt.Errorf("failed to reset identity for %s: %w", table, err)
	}
	return nil
}
