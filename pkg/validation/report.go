// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package validation

import (
	"fmt"
	"strings"
	"time"
)

const (
	CheckSchemaStructure = "schema_structure"
	CheckDataMigration   = "data_migration"
	CheckDataIntegrity   = "data_integrity"
)

// Check is the outcome of one validation dimension. Details name the exact
// offenders so an operator can act without re-running anything.
type Check struct {
	Name    string   `json:"name"`
	Passed  bool     `json:"passed"`
	Details []string `json:"details,omitempty"`
}

// Report is the outcome of validating one tenant's migrated schema.
type Report struct {
	TenantID string    `json:"tenant_id"`
	RanAt    time.Time `json:"ran_at"`
	Checks   []Check   `json:"checks"`
	Passed   bool      `json:"passed"`
}

func (r *Report) check(name string) *Check {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i]
		}
	}
	return nil
}

// GenerateReport renders validation reports as operator-readable text. It is
// rendering only and never re-runs checks.
func GenerateReport(reports ...*Report) string {
	var b strings.Builder
	for _, report := range reports {
		fmt.Fprintf(&b, "tenant %s: %s (checked at %s)\n",
			report.TenantID, passedLabel(report.Passed), report.RanAt.UTC().Format(time.RFC3339))
		for _, check := range report.Checks {
			fmt.Fprintf(&b, "  %-18s %s\n", check.Name, passedLabel(check.Passed))
			for _, detail := range check.Details {
				fmt.Fprintf(&b, "    - %s\n", detail)
			}
		}
	}
	return b.String()
}

func passedLabel(passed bool) string {
	if passed {
		return "passed"
	}
	return "FAILED"
}
