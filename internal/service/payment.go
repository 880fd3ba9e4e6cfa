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

// PaymentService manages payment records. Amounts are immutable after
// creation; only the status moves.
type PaymentService struct {
	payments repository.PaymentRepository
	logger   *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(payments repository.PaymentRepository, logger *slog.Logger) *PaymentService {
	return &PaymentService{payments: payments, logger: logger}
}

// CreatePaymentInput holds the parameters for recording a payment obligation.
type CreatePaymentInput struct {
	TenantID string
	LeaseID  string
	Date     time.Time
	Amount   int64
	Status   string
	Method   string
}

// Create records a new payment obligation for a billing cycle.
func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	status := input.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}
	if !domain.ValidPaymentStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment status %q", status))
	}
	method := input.Method
	if method == "" {
		method = domain.PaymentMethodOther
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment method %q", method))
	}
	if input.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount must be positive")
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        uuid.New().String(),
		TenantID:  input.TenantID,
		LeaseID:   input.LeaseID,
		Date:      input.Date,
		Amount:    input.Amount,
		Status:    status,
		Method:    method,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.logger.InfoContext(ctx, "payment created",
		slog.String("payment_id", payment.ID),
		slog.String("tenant_id", payment.TenantID),
		slog.Int64("amount", payment.Amount),
	)

	return payment, nil
}

// Get retrieves a payment. Tenants may only read their own records.
func (s *PaymentService) Get(ctx context.Context, id, requesterID, requesterRole string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterRole == domain.RoleTenant && payment.TenantID != requesterID {
		return nil, apperrors.Forbidden("payment belongs to another tenant")
	}
	return payment, nil
}

// ListByTenant returns the tenant's full payment history ordered by date.
func (s *PaymentService) ListByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	return s.payments.ListByTenant(ctx, tenantID)
}

// UpdateStatus sets a payment's status.
func (s *PaymentService) UpdateStatus(ctx context.Context, id, status string) (*domain.Payment, error) {
	if !domain.ValidPaymentStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment status %q", status))
	}

	payment, err := s.payments.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment status updated",
		slog.String("payment_id", payment.ID),
		slog.String("status", payment.Status),
	)

	return payment, nil
}
