package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/repository"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// MaintenanceService manages tenant repair tickets.
type MaintenanceService struct {
	requests repository.MaintenanceRepository
	logger   *slog.Logger
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(requests repository.MaintenanceRepository, logger *slog.Logger) *MaintenanceService {
	return &MaintenanceService{requests: requests, logger: logger}
}

// CreateMaintenanceInput holds the parameters for filing a ticket.
type CreateMaintenanceInput struct {
	TenantID    string
	IssueType   string
	Description string
}

// Create files a new maintenance request. New tickets always start pending.
func (s *MaintenanceService) Create(ctx context.Context, input CreateMaintenanceInput) (*domain.MaintenanceRequest, error) {
	now := time.Now().UTC()
	req := &domain.MaintenanceRequest{
		ID:          uuid.New().String(),
		TenantID:    input.TenantID,
		IssueType:   input.IssueType,
		Description: input.Description,
		Status:      domain.MaintenanceStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create maintenance request: %w", err)
	}

	s.logger.InfoContext(ctx, "maintenance request created",
		slog.String("request_id", req.ID),
		slog.String("tenant_id", req.TenantID),
		slog.String("issue_type", req.IssueType),
	)

	return req, nil
}

// List returns maintenance requests newest-first. An empty tenantID returns
// every request.
func (s *MaintenanceService) List(ctx context.Context, tenantID string) ([]domain.MaintenanceRequest, error) {
	return s.requests.List(ctx, tenantID)
}

// UpdateStatus transitions a request's status.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, id, status string) (*domain.MaintenanceRequest, error) {
	if !domain.ValidMaintenanceStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid maintenance status %q", status))
	}

	req, err := s.requests.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "maintenance status updated",
		slog.String("request_id", req.ID),
		slog.String("status", req.Status),
	)

	return req, nil
}
