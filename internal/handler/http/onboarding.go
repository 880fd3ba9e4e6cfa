package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/TioMeko/Property-Management/internal/service"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
	"github.com/TioMeko/Property-Management/pkg/httputil"
	"github.com/TioMeko/Property-Management/pkg/middleware"
	"github.com/TioMeko/Property-Management/pkg/validator"
)

// OnboardingHandler handles HTTP requests for onboarding drafts.
type OnboardingHandler struct {
	service *service.OnboardingService
	logger  *slog.Logger
}

// NewOnboardingHandler creates a new onboarding HTTP handler.
func NewOnboardingHandler(svc *service.OnboardingService, logger *slog.Logger) *OnboardingHandler {
	return &OnboardingHandler{service: svc, logger: logger}
}

// SaveStepRequest is the JSON request body for recording onboarding progress.
type SaveStepRequest struct {
	Step int            `json:"step" validate:"gte=0"`
	Data map[string]any `json:"data"`
}

// Get handles GET /api/v1/onboarding
//
// A user who never started the flow gets an empty draft at step zero rather
// than a 404, so the client can render the first step unconditionally.
func (h *OnboardingHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	draft, err := h.service.Get(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			httputil.WriteJSON(w, http.StatusOK, httputil.Response{
				Data: map[string]any{"step_completed": 0, "data": map[string]any{}},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}

// SaveStep handles PUT /api/v1/onboarding
func (h *OnboardingHandler) SaveStep(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	identity := middleware.IdentityFromContext(r.Context())

	var req SaveStepRequest
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

	draft, err := h.service.SaveStep(r.Context(), identity.ID, req.Step, req.Data)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: draft})
}
