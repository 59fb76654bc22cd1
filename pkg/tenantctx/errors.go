// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import "errors"

var (
	// ErrTenantNotResolved means no tenant matched the request descriptor.
	ErrTenantNotResolved = errors.New("no tenant matched the request")
	// ErrAccessDenied means the tenant exists but the user's membership is
	// missing or inactive. Never conflate this with resolution failure.
	ErrAccessDenied = errors.New("membership missing or inactive")
)
