package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/repository"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// LeaseService manages lease records and the single-active-lease invariant.
type LeaseService struct {
	leases repository.LeaseRepository
	logger *slog.Logger
}

// NewLeaseService creates a new lease service.
func NewLeaseService(leases repository.LeaseRepository, logger *slog.Logger) *LeaseService {
	return &LeaseService{leases: leases, logger: logger}
}

// CreateLeaseInput holds the parameters for creating a lease.
type CreateLeaseInput struct {
	TenantID      string
	LandlordID    string
	Unit          string
	StartDate     time.Time
	EndDate       time.Time
	RentAmount    int64
	DepositAmount int64
	LeaseType     string
	PaymentDueDay int
	GracePeriod   int
	Status        string
	TermsURL      string
}

// Create writes a new lease. A tenant may hold at most one active lease, so
// the check runs here at write time and the store's partial unique index
// backs it up against races.
func (s *LeaseService) Create(ctx context.Context, input CreateLeaseInput) (*domain.Lease, error) {
	status := input.Status
	if status == "" {
		status = domain.LeaseStatusPending
	}
	if !domain.ValidLeaseStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid lease status %q", status))
	}
	leaseType := input.LeaseType
	if leaseType == "" {
		leaseType = domain.LeaseTypeFixed
	}
	if !domain.ValidLeaseType(leaseType) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid lease type %q", leaseType))
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.InvalidInput("end date must be after start date")
	}

	if status == domain.LeaseStatusActive {
		_, err := s.leases.GetActiveByTenant(ctx, input.TenantID)
		switch {
		case err == nil:
			return nil, apperrors.Conflict("tenant already has an active lease")
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("check active lease: %w", err)
		}
	}

	now := time.Now().UTC()
	lease := &domain.Lease{
		ID:            uuid.New().String(),
		TenantID:      input.TenantID,
		LandlordID:    input.LandlordID,
		Unit:          input.Unit,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		RentAmount:    input.RentAmount,
		DepositAmount: input.DepositAmount,
		LeaseType:     leaseType,
		PaymentDueDay: input.PaymentDueDay,
		GracePeriod:   input.GracePeriod,
		Status:        status,
		TermsURL:      input.TermsURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.leases.Create(ctx, lease); err != nil {
		return nil, fmt.Errorf("create lease: %w", err)
	}

	s.logger.InfoContext(ctx, "lease created",
		slog.String("lease_id", lease.ID),
		slog.String("tenant_id", lease.TenantID),
		slog.String("status", lease.Status),
	)

	return lease, nil
}

// ActiveLease returns the tenant's active lease, or ErrNotFound.
func (s *LeaseService) ActiveLease(ctx context.Context, tenantID string) (*domain.Lease, error) {
	return s.leases.GetActiveByTenant(ctx, tenantID)
}

// ListByTenant returns all leases for a tenant, newest first.
func (s *LeaseService) ListByTenant(ctx context.Context, tenantID string) ([]domain.Lease, error) {
	return s.leases.ListByTenant(ctx, tenantID)
}

// UpdateStatus transitions a lease's status. Activating a second lease for
// the same tenant fails with a conflict from the store's unique index.
func (s *LeaseService) UpdateStatus(ctx context.Context, id, status string) (*domain.Lease, error) {
	if !domain.ValidLeaseStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid lease status %q", status))
	}

	lease, err := s.leases.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lease status updated",
		slog.String("lease_id", lease.ID),
		slog.String("status", lease.Status),
	)

	return lease, nil
}
