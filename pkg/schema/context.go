// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package schema

import (
	"context"
)

type activeSchemaKey struct{}

// ContextWithActiveSchema binds the active schema to the context. The active
// schema is carried per logical task, never in process-wide state, so
// concurrent requests for different tenants cannot observe each other.
func ContextWithActiveSchema(ctx context.Context, schemaName string) context.Context {
	return context.WithValue(ctx, activeSchemaKey{}, schemaName)
}

// ActiveSchemaFromContext returns the schema bound to the context, if any.
func ActiveSchemaFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(activeSchemaKey{}).(string)
	return name, ok
}
