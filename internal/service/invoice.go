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

// InvoiceService manages itemized invoices.
type InvoiceService struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoices repository.InvoiceRepository, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{invoices: invoices, logger: logger}
}

// CreateInvoiceInput holds the parameters for issuing an invoice.
type CreateInvoiceInput struct {
	InvoiceNumber string
	TenantID      string
	LeaseID       string
	IssueDate     time.Time
	DueDate       time.Time
	Status        string
	Notes         string
	LineItems     []domain.LineItem
}

// Create issues a new invoice. At least one line item is required and every
// item amount must be positive; the total is derived from the items.
func (s *InvoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	if len(input.LineItems) == 0 {
		return nil, apperrors.InvalidInput("invoice requires at least one line item")
	}
	for i, item := range input.LineItems {
		if item.Title == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("line item %d missing title", i))
		}
		if item.Amount <= 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("line item %d amount must be positive", i))
		}
	}

	status := input.Status
	if status == "" {
		status = domain.InvoiceStatusDraft
	}
	if !domain.ValidInvoiceStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid invoice status %q", status))
	}

	now := time.Now().UTC()
	invoice := &domain.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: input.InvoiceNumber,
		TenantID:      input.TenantID,
		LeaseID:       input.LeaseID,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		Status:        status,
		Notes:         input.Notes,
		LineItems:     input.LineItems,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "invoice created",
		slog.String("invoice_id", invoice.ID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Int64("total", invoice.TotalAmount()),
	)

	return invoice, nil
}

// Get retrieves an invoice. Tenants may only read their own invoices.
func (s *InvoiceService) Get(ctx context.Context, id, requesterID, requesterRole string) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterRole == domain.RoleTenant && invoice.TenantID != requesterID {
		return nil, apperrors.Forbidden("invoice belongs to another tenant")
	}
	return invoice, nil
}

// List returns invoices sorted by due date. Tenants are scoped to their own
// records; landlords and admins see everything when tenantID is empty.
func (s *InvoiceService) List(ctx context.Context, tenantID string) ([]domain.Invoice, error) {
	return s.invoices.List(ctx, tenantID)
}

// UpdateStatus transitions an invoice's status.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id, status string) (*domain.Invoice, error) {
	if !domain.ValidInvoiceStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid invoice status %q", status))
	}

	invoice, err := s.invoices.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "invoice status updated",
		slog.String("invoice_id", invoice.ID),
		slog.String("status", invoice.Status),
	)

	return invoice, nil
}
