package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/service"
	"github.com/TioMeko/Property-Management/pkg/httputil"
	"github.com/TioMeko/Property-Management/pkg/middleware"
	"github.com/TioMeko/Property-Management/pkg/validator"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service *service.InvoiceService
	logger  *slog.Logger
}

// NewInvoiceHandler creates a new invoice HTTP handler.
func NewInvoiceHandler(svc *service.InvoiceService, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: svc, logger: logger}
}

// LineItemRequest is one billable entry in an invoice request.
type LineItemRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
}

// CreateInvoiceRequest is the JSON request body for issuing an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoice_number" validate:"required,min=1,max=50"`
	TenantID      string            `json:"tenant_id" validate:"required,uuid"`
	LeaseID       string            `json:"lease_id" validate:"omitempty,uuid"`
	IssueDate     time.Time         `json:"issue_date" validate:"required"`
	DueDate       time.Time         `json:"due_date" validate:"required"`
	Status        string            `json:"status" validate:"omitempty,oneof=draft sent partial paid void"`
	Notes         string            `json:"notes" validate:"max=2000"`
	LineItems     []LineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest is the JSON request body for a status change.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent partial paid void"`
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateInvoiceRequest
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

	items := make([]domain.LineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		items = append(items, domain.LineItem{
			Title:       item.Title,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}

	invoice, err := h.service.Create(r.Context(), service.CreateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		TenantID:      req.TenantID,
		LeaseID:       req.LeaseID,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		Notes:         req.Notes,
		LineItems:     items,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: invoice})
}

// Get handles GET /api/v1/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	identity := middleware.IdentityFromContext(r.Context())

	invoice, err := h.service.Get(r.Context(), id, identity.ID, identity.Role)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: invoice})
}

// List handles GET /api/v1/invoices
//
// Tenants see only their own invoices. Landlords and admins see all, or can
// scope with the tenant_id query parameter.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	tenantID := r.URL.Query().Get("tenant_id")
	if identity.Role == domain.RoleTenant {
		tenantID = identity.ID
	}

	invoices, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: invoices})
}

// UpdateStatus handles PATCH /api/v1/invoices/{id}/status
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	id := chi.URLParam(r, "id")

	var req UpdateInvoiceStatusRequest
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

	invoice, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: invoice})
}
