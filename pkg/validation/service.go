// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/storage"
	"github.com/alumnify/tenant-isolation/internal/tracing"
)

// Service verifies a migrated tenant schema on three dimensions: structure,
// row-count parity against the pre-migration snapshot, and referential
// integrity. It only ever reads; a failed check is reported, never repaired.
type Service struct {
	storage    StorageInterface
	lifecycle  LifecycleInterface
	schemaData SchemaDataInterface
	tracer     tracing.TracingInterface
	logger     logging.LoggerInterface
	now        func() time.Time
}

func NewService(
	storage StorageInterface,
	lifecycle LifecycleInterface,
	schemaData SchemaDataInterface,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		lifecycle:  lifecycle,
		schemaData: schemaData,
		tracer:     tracer,
		logger:     logger,
		now:        time.Now,
	}
}

// ValidateTenantMigration runs every check and reports per-check outcomes.
// The report passes only when all checks pass. Infrastructure failures, a
// broken database connection for instance, come back as errors instead of a
// failed report.
func (s *Service) ValidateTenantMigration(ctx context.Context, tenantID string) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "validation.ValidateTenantMigration")
	defer span.End()

	report := &Report{TenantID: tenantID, RanAt: s.now()}

	structure, err := s.checkStructure(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	report.Checks = append(report.Checks, structure)

	parity, err := s.checkDataMigration(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	report.Checks = append(report.Checks, parity)

	integrity, err := s.checkDataIntegrity(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	report.Checks = append(report.Checks, integrity)

	report.Passed = structure.Passed && parity.Passed && integrity.Passed
	if !report.Passed {
		s.logger.Warnf("tenant %s failed migration validation", tenantID)
	}
	return report, nil
}

func (s *Service) checkStructure(ctx context.Context, tenantID string) (Check, error) {
	check := Check{Name: CheckSchemaStructure}

	structure, err := s.lifecycle.ValidateSchema(ctx, tenantID)
	if err != nil {
		return check, fmt.Errorf("validating schema structure: %w", err)
	}
	check.Passed = structure.Valid
	for _, table := range structure.MissingTables {
		check.Details = append(check.Details, fmt.Sprintf("missing table %q", table))
	}
	check.Details = append(check.Details, structure.StructuralErrors...)
	return check, nil
}

// checkDataMigration compares schema row counts per entity against the counts
// recorded in the pre-migration snapshot manifest. The hybrid tables are not
// consulted, they may already be purged.
func (s *Service) checkDataMigration(ctx context.Context, tenantID string) (Check, error) {
	check := Check{Name: CheckDataMigration}

	ref, err := s.storage.LatestBackupRef(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			check.Details = append(check.Details, "no pre-migration snapshot recorded")
			return check, nil
		}
		return check, fmt.Errorf("looking up backup ref: %w", err)
	}

	manifest, err := s.lifecycle.LoadManifest(ctx, ref)
	if err != nil {
		return check, fmt.Errorf("loading snapshot manifest %q: %w", ref, err)
	}
	counts, err := s.schemaData.Counts(ctx, tenantID)
	if err != nil {
		return check, fmt.Errorf("counting schema rows: %w", err)
	}

	expected := manifest.Counts()
	entities := make([]string, 0, len(expected))
	for entity := range expected {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	check.Passed = true
	for _, entity := range entities {
		if counts[entity] != expected[entity] {
			check.Passed = false
			check.Details = append(check.Details, fmt.Sprintf(
				"%s: schema holds %d rows, snapshot recorded %d", entity, counts[entity], expected[entity]))
		}
	}
	return check, nil
}

func (s *Service) checkDataIntegrity(ctx context.Context, tenantID string) (Check, error) {
	check := Check{Name: CheckDataIntegrity}

	orphans, err := s.schemaData.Orphans(ctx, tenantID)
	if err != nil {
		return check, fmt.Errorf("checking referential integrity: %w", err)
	}
	check.Passed = len(orphans) == 0
	for _, orphan := range orphans {
		check.Details = append(check.Details, orphan.String())
	}
	return check, nil
}
