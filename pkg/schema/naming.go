// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import (
	"strings"
)

const schemaPrefix = "tenant_"

// Name derives the deterministic schema name for a tenant. Hyphens are not
// valid in unquoted identifiers, so UUID dashes become underscores.
func Name(tenantID string) string {
	return schemaPrefix + strings.ReplaceAll(strings.ToLower(tenantID), "-", "_")
}

// quoteIdent quotes a PostgreSQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
