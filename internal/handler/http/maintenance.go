package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/service"
	"github.com/TioMeko/Property-Management/pkg/httputil"
	"github.com/TioMeko/Property-Management/pkg/middleware"
	"github.com/TioMeko/Property-Management/pkg/validator"
)

// MaintenanceHandler handles HTTP requests for maintenance tickets.
type MaintenanceHandler struct {
	service *service.MaintenanceService
	logger  *slog.Logger
}

// NewMaintenanceHandler creates a new maintenance HTTP handler.
func NewMaintenanceHandler(svc *service.MaintenanceService, logger *slog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{service: svc, logger: logger}
}

// CreateMaintenanceRequest is the JSON request body for filing a ticket.
type CreateMaintenanceRequest struct {
	IssueType   string `json:"issue_type" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
}

// UpdateMaintenanceStatusRequest is the JSON request body for a transition.
type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// Create handles POST /api/v1/maintenance
//
// The ticket is always filed for the authenticated tenant.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	identity := middleware.IdentityFromContext(r.Context())

	var req CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ticket, err := h.service.Create(r.Context(), service.CreateMaintenanceInput{
		TenantID:    identity.ID,
		IssueType:   req.IssueType,
		Description: req.Description,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: ticket})
}

// List handles GET /api/v1/maintenance
//
// Tenants see their own tickets; landlords and admins see every ticket.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	tenantID := ""
	if identity.Role == domain.RoleTenant {
		tenantID = identity.ID
	}

	tickets, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tickets})
}

// UpdateStatus handles PATCH /api/v1/maintenance/{id}/status
func (h *MaintenanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdateMaintenanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	ticket, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ticket})
}
