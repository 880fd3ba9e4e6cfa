package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/service"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
	"github.com/TioMeko/Property-Management/pkg/httputil"
	"github.com/TioMeko/Property-Management/pkg/middleware"
	"github.com/TioMeko/Property-Management/pkg/validator"
)

// PaymentHandler handles HTTP requests for payment records.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, logger: logger}
}

// CreatePaymentRequest is the JSON request body for recording a payment.
type CreatePaymentRequest struct {
	TenantID string    `json:"tenant_id" validate:"required,uuid"`
	LeaseID  string    `json:"lease_id" validate:"omitempty,uuid"`
	Date     time.Time `json:"date" validate:"required"`
	Amount   int64     `json:"amount" validate:"required,gt=0"`
	Status   string    `json:"status" validate:"omitempty,oneof=paid pending overdue"`
	Method   string    `json:"method" validate:"omitempty,oneof=ach card cash other"`
}

// UpdatePaymentStatusRequest is the JSON request body for a status change.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid pending overdue"`
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreatePaymentRequest
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

	payment, err := h.service.Create(r.Context(), service.CreatePaymentInput{
		TenantID: req.TenantID,
		LeaseID:  req.LeaseID,
		Date:     req.Date,
		Amount:   req.Amount,
		Status:   req.Status,
		Method:   req.Method,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: payment})
}

// Get handles GET /api/v1/payments/{id}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := middleware.IdentityFromContext(r.Context())

	payment, err := h.service.Get(r.Context(), id, identity.ID, identity.Role)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payment})
}

// ListByTenant handles GET /api/v1/payments/tenant/{tenantId}
//
// Tenants may only list their own history; landlords and admins may list any
// tenant's.
func (h *PaymentHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	identity := middleware.IdentityFromContext(r.Context())

	if identity.Role == domain.RoleTenant && tenantID != identity.ID {
		httputil.WriteError(w, r, apperrors.Forbidden("payments belong to another tenant"), h.logger)
		return
	}

	payments, err := h.service.ListByTenant(r.Context(), tenantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payments})
}

// UpdateStatus handles PATCH /api/v1/payments/{id}/status
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdatePaymentStatusRequest
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

	payment, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payment})
}
