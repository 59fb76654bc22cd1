// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package blob stores backup snapshot artifacts. Artifacts are append-only:
// a key is written once and never mutated afterwards.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	DriverFilesystem = "fs"
	DriverS3         = "s3"
	DriverMemory     = "memory"
)

var ErrKeyExists = errors.New("blob key already exists")

type Store interface {
	Driver() string
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

type Config struct {
	Driver string

	// Filesystem driver.
	FSRoot string

	// S3 driver.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// NewStore constructs the store named by cfg.Driver.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystemStore(cfg.FSRoot)
	case DriverS3:
		return NewS3Store(ctx, cfg)
	case DriverMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
}
