package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TioMeko/Property-Management/internal/service"
	"github.com/TioMeko/Property-Management/pkg/httputil"
	"github.com/TioMeko/Property-Management/pkg/validator"
)

// LeaseHandler handles HTTP requests for lease management.
type LeaseHandler struct {
	service *service.LeaseService
	logger  *slog.Logger
}

// NewLeaseHandler creates a new lease HTTP handler.
func NewLeaseHandler(svc *service.LeaseService, logger *slog.Logger) *LeaseHandler {
	return &LeaseHandler{service: svc, logger: logger}
}

// CreateLeaseRequest is the JSON request body for creating a lease.
type CreateLeaseRequest struct {
	TenantID      string    `json:"tenant_id" validate:"required,uuid"`
	LandlordID    string    `json:"landlord_id" validate:"required,uuid"`
	Unit          string    `json:"unit" validate:"required,min=1,max=100"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	RentAmount    int64     `json:"rent_amount" validate:"required,gt=0"`
	DepositAmount int64     `json:"deposit_amount" validate:"gte=0"`
	LeaseType     string    `json:"lease_type" validate:"omitempty,oneof=fixed month_to_month"`
	PaymentDueDay int       `json:"payment_due_day" validate:"omitempty,min=1,max=28"`
	GracePeriod   int       `json:"grace_period" validate:"gte=0"`
	Status        string    `json:"status" validate:"omitempty,oneof=active pending ended"`
	TermsURL      string    `json:"terms_url" validate:"omitempty,url"`
}

// UpdateLeaseStatusRequest is the JSON request body for a status transition.
type UpdateLeaseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending ended"`
}

// Create handles POST /api/v1/leases
func (h *LeaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateLeaseRequest
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

	lease, err := h.service.Create(r.Context(), service.CreateLeaseInput{
		TenantID:      req.TenantID,
		LandlordID:    req.LandlordID,
		Unit:          req.Unit,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		RentAmount:    req.RentAmount,
		DepositAmount: req.DepositAmount,
		LeaseType:     req.LeaseType,
		PaymentDueDay: req.PaymentDueDay,
		GracePeriod:   req.GracePeriod,
		Status:        req.Status,
		TermsURL:      req.TermsURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: lease})
}

// ListByTenant handles GET /api/v1/leases/tenant/{tenantId}
func (h *LeaseHandler) ListByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")

	leases, err := h.service.ListByTenant(r.Context(), tenantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: leases})
}

// UpdateStatus handles PATCH /api/v1/leases/{id}/status
func (h *LeaseHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdateLeaseStatusRequest
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

	lease, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: lease})
}
