// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Tenant statuses.
const (
	TenantActive    = "active"
	TenantSuspended = "suspended"
)

// Migration statuses. Valid transitions:
// none -> in_progress -> {completed, failed}, completed -> rolled_back,
// failed -> in_progress (retry).
const (
	MigrationNone       = "none"
	MigrationInProgress = "in_progress"
	MigrationCompleted  = "completed"
	MigrationFailed     = "failed"
	MigrationRolledBack = "rolled_back"
)

type Tenant struct {
	ID                   string         `db:"id" json:"id"`
	Slug                 string         `db:"slug" json:"slug"`
	Domain               string         `db:"domain" json:"domain"`
	Status               string         `db:"status" json:"status"`
	SchemaName           *string        `db:"schema_name" json:"schema_name,omitempty"`
	MigrationStatus      string         `db:"migration_status" json:"migration_status"`
	MigrationCompletedAt *time.Time     `db:"migration_completed_at" json:"migration_completed_at,omitempty"`
	Settings             map[string]any `db:"settings" json:"settings,omitempty"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
}

// SchemaReady reports whether the tenant's isolated schema can be used.
func (t *Tenant) SchemaReady() bool {
	return t.MigrationStatus == MigrationCompleted && t.SchemaName != nil
}

// GlobalUser is a canonical catalog record, read-only to this core.
type GlobalUser struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GlobalCourse is a canonical catalog record, read-only to this core.
type GlobalCourse struct {
	ID        string    `db:"id"`
	Code      string    `db:"code"`
	Title     string    `db:"title"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Membership links a GlobalUser to a Tenant. It is the sole source of truth
// for tenant membership.
type Membership struct {
	ID           string    `db:"id"`
	GlobalUserID string    `db:"global_user_id"`
	TenantID     string    `db:"tenant_id"`
	Role         string    `db:"role"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
}

// TenantUser is the tenant-local materialized copy of a GlobalUser.
type TenantUser struct {
	ID             int64     `db:"id" json:"id"`
	GlobalUserID   string    `db:"global_user_id" json:"global_user_id"`
	Email          string    `db:"email" json:"email"`
	Name           string    `db:"name" json:"name"`
	LocalUpdatedAt time.Time `db:"local_updated_at" json:"local_updated_at"`
}

// TenantCourse is the tenant-local offering of a GlobalCourse. Custom fields
// are tenant-owned and must survive syncs.
type TenantCourse struct {
	ID             int64          `db:"id" json:"id"`
	GlobalCourseID string         `db:"global_course_id" json:"global_course_id"`
	Code           string         `db:"code" json:"code"`
	Title          string         `db:"title" json:"title"`
	CustomTitle    *string        `db:"custom_title" json:"custom_title,omitempty"`
	CustomSettings map[string]any `db:"custom_settings" json:"custom_settings,omitempty"`
	LocalUpdatedAt time.Time      `db:"local_updated_at" json:"local_updated_at"`
}

type TenantEnrollment struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	CourseID   int64     `db:"course_id" json:"course_id"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// MigrationLog is an immutable audit record of one orchestration step or run.
type MigrationLog struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Operation string    `db:"operation"`
	Status    string    `db:"status"`
	Step      string    `db:"step"`
	BackupRef string    `db:"backup_ref"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}

// SyncLog is an immutable audit record of one sync invocation.
type SyncLog struct {
	ID        string    `db:"id"`
	Operation string    `db:"operation"`
	SourceID  string    `db:"source_id"`
	TenantIDs []string  `db:"tenant_ids"`
	Status    string    `db:"status"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}

// BackupManifest describes one backup snapshot: entity artifacts in dependency
// order with their row counts. It is written once and never mutated.
type BackupManifest struct {
	TenantID string         `json:"tenant_id"`
	TakenAt  time.Time      `json:"taken_at"`
	Entities []BackupEntity `json:"entities"`
}

type BackupEntity struct {
	Name     string `json:"name"`
	Artifact string `json:"artifact"`
	RowCount int64  `json:"row_count"`
}

// Counts returns per-entity row counts from the manifest.
func (m *BackupManifest) Counts() map[string]int64 {
	counts := make(map[string]int64, len(m.Entities))
	for _, e := range m.Entities {
		counts[e.Name] = e.RowCount
	}
	return counts
}
