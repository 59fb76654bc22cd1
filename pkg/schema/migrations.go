// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

// Migration is one versioned structural step. Statements reference the target
// schema through the %[1]s verb, filled with the quoted schema name on apply.
type Migration struct {
	Version int64
	Name    string
	Up      []string
	Down    []string
}

// EntityOrder lists entity tables in dependency order, parents before
// children. Data copy and restore follow this order; truncation reverses it.
var EntityOrder = []string{"users", "courses", "enrollments"}

// RequiredTables is the manifest every tenant schema must satisfy.
var RequiredTables = map[string][]string{
	"users": {
		"id", "global_user_id", "email", "name", "local_updated_at",
	},
	"courses": {
		"id", "global_course_id", "code", "title", "custom_title", "custom_settings", "local_updated_at",
	},
	"enrollments": {
		"id", "user_id", "course_id", "enrolled_at",
	},
}

// DefaultMigrationSet returns the totally ordered structural migrations that
// bring a tenant schema up to the required-tables manifest.
func DefaultMigrationSet() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_users",
			Up: []string{
				`CREATE TABLE %[1]s.users (
					id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
					global_user_id UUID NOT NULL UNIQUE,
					email TEXT NOT NULL,
					name TEXT NOT NULL,
					local_updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
			},
			Down: []string{
				`DROP TABLE %[1]s.users`,
			},
		},
		{
			Version: 2,
			Name:    "create_courses",
			Up: []string{
				`CREATE TABLE %[1]s.courses (
					id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
					global_course_id UUID NOT NULL UNIQUE,
					code TEXT NOT NULL,
					title TEXT NOT NULL,
					custom_title TEXT,
					custom_settings JSONB NOT NULL DEFAULT '{}',
					local_updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
			},
			Down: []string{
				`DROP TABLE %[1]s.courses`,
			},
		},
		{
			Version: 3,
			Name:    "create_enrollments",
			Up: []string{
				`CREATE TABLE %[1]s.enrollments (
					id BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
					user_id BIGINT NOT NULL REFERENCES %[1]s.users (id),
					course_id BIGINT NOT NULL REFERENCES %[1]s.courses (id),
					enrolled_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE INDEX enrollments_user_idx ON %[1]s.enrollments (user_id)`,
				`CREATE INDEX enrollments_course_idx ON %[1]s.enrollments (course_id)`,
			},
			Down: []string{
				`DROP TABLE %[1]s.enrollments`,
			},
		},
		{
			Version: 4,
			Name:    "create_id_translations",
			Up: []string{
				`CREATE TABLE %[1]s.id_translations (
					entity TEXT NOT NULL,
					old_id BIGINT NOT NULL,
					new_id BIGINT NOT NULL,
					PRIMARY KEY (entity, old_id)
				)`,
			},
			Down: []string{
				`DROP TABLE %[1]s.id_translations`,
			},
		},
	}
}
