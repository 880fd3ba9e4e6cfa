package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TioMeko/Property-Management/internal/service"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
	"github.com/TioMeko/Property-Management/pkg/httputil"
	"github.com/TioMeko/Property-Management/pkg/middleware"
)

// TenantHandler serves the tenant dashboard endpoints.
type TenantHandler struct {
	tenants *service.TenantService
	leases  *service.LeaseService
	logger  *slog.Logger
}

// NewTenantHandler creates a new tenant dashboard HTTP handler.
func NewTenantHandler(tenants *service.TenantService, leases *service.LeaseService, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, leases: leases, logger: logger}
}

// Summary handles GET /api/v1/tenant/summary
//
// The body is the bare summary object the dashboard consumes, not the usual
// data envelope. Tenants without an active lease still get a summary; their
// financials are simply zero.
func (h *TenantHandler) Summary(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	summary, err := h.tenants.Summary(r.Context(), identity.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}

// Lease handles GET /api/v1/tenant/lease
func (h *TenantHandler) Lease(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	lease, err := h.leases.ActiveLease(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			httputil.WriteError(w, r, apperrors.NotFound("active lease for tenant", identity.ID), h.logger)
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: lease.Summary()})
}
