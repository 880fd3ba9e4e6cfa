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

// NoticeHandler handles HTTP requests for dashboard notices.
type NoticeHandler struct {
	service *service.NoticeService
	logger  *slog.Logger
}

// NewNoticeHandler creates a new notice HTTP handler.
func NewNoticeHandler(svc *service.NoticeService, logger *slog.Logger) *NoticeHandler {
	return &NoticeHandler{service: svc, logger: logger}
}

// CreateNoticeRequest is the JSON request body for publishing a notice.
type CreateNoticeRequest struct {
	Title     string     `json:"title" validate:"required,min=1,max=200"`
	Body      string     `json:"body" validate:"required,min=1,max=5000"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date"`
}

// Create handles POST /api/v1/notices
func (h *NoticeHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateNoticeRequest
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

	notice, err := h.service.Create(r.Context(), service.CreateNoticeInput{
		Title:     req.Title,
		Body:      req.Body,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: notice})
}

// List handles GET /api/v1/notices
func (h *NoticeHandler) List(w http.ResponseWriter, r *http.Request) {
	notices, err := h.service.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: notices})
}

// Deactivate handles DELETE /api/v1/notices/{id}
func (h *NoticeHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"message": "notice deactivated"},
	})
}
