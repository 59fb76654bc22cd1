// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// Resolver cache. When RedisURL is empty an in-memory TTL cache is used.
	RedisURL         string        `envconfig:"redis_url"`
	ResolverCacheTTL time.Duration `envconfig:"resolver_cache_ttl" default:"5m"`

	// Backup snapshot store: "fs" or "s3".
	BackupDriver   string `envconfig:"backup_driver" default:"fs" validate:"oneof=fs s3 memory"`
	BackupFSRoot   string `envconfig:"backup_fs_root" default:"./backups"`
	BackupS3Bucket string `envconfig:"backup_s3_bucket"`
	BackupS3Region string `envconfig:"backup_s3_region" default:"us-east-1"`
	// Optional custom endpoint, e.g. MinIO.
	BackupS3Endpoint  string `envconfig:"backup_s3_endpoint"`
	BackupS3PathStyle bool   `envconfig:"backup_s3_path_style" default:"false"`

	// Whether hybrid rows are purged after a successful migration.
	// Default is retain, purge is an explicit operator decision.
	PurgeHybridAfterMigration bool `envconfig:"purge_hybrid_after_migration" default:"false"`
	// Remap primary keys during data copy when hybrid IDs are not globally unique.
	RemapIDsOnMigration bool `envconfig:"remap_ids_on_migration" default:"false"`

	SyncInterval time.Duration `envconfig:"sync_interval" default:"1m" validate:"min=1s"`
}

// Validate runs struct-level validation on top of envconfig processing.
func (s *EnvSpec) Validate() error {
	return validator.New().Struct(s)
}
