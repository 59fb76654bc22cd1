// Copyright 2026 Alumnify Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantctx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alumnify/tenant-isolation/internal/logging"
	"github.com/alumnify/tenant-isolation/internal/tracing"
)

// TenantIDHeader carries an explicit tenant selection on API requests.
const TenantIDHeader = "X-Tenant-ID"

// API exposes tenant resolution as an ops surface: resolve the tenant for a
// given descriptor and inspect the recent context switches.
type API struct {
	resolver *Resolver
	tracer   tracing.TracingInterface
	logger   logging.LoggerInterface
}

func NewAPI(resolver *Resolver, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{resolver: resolver, tracer: tracer, logger: logger}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/tenants/resolve", a.resolve)
	mux.Get("/api/v0/tenants/switches", a.switches)
	mux.Patch("/api/v0/tenants/{id}/settings", a.updateSettings)
}

func (a *API) resolve(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenantctx.API.resolve")
	defer span.End()

	descriptor := RequestDescriptor{
		TenantIDHeader: r.Header.Get(TenantIDHeader),
		TenantIDParam:  r.URL.Query().Get("tenant_id"),
		Host:           r.Host,
	}

	tenant, err := a.resolver.Resolve(ctx, descriptor)
	if err != nil {
		if errors.Is(err, ErrTenantNotResolved) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()}, a.logger)
			return
		}
		a.logger.Errorf("resolving tenant: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"}, a.logger)
		return
	}

	writeJSON(w, http.StatusOK, tenant, a.logger)
}

func (a *API) updateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenantctx.API.updateSettings")
	defer span.End()

	tenantID := chi.URLParam(r, "id")

	settings := make(map[string]any)
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid settings payload"}, a.logger)
		return
	}

	if err := a.resolver.UpdateSettings(ctx, tenantID, settings); err != nil {
		if errors.Is(err, ErrTenantNotResolved) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()}, a.logger)
			return
		}
		a.logger.Errorf("updating tenant settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"}, a.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) switches(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "tenantctx.API.switches")
	defer span.End()

	writeJSON(w, http.StatusOK, a.resolver.History(), a.logger)
}

func writeJSON(w http.ResponseWriter, code int, payload any, logger logging.LoggerInterface) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("writing response: %v", err)
	}
}
