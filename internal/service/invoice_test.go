package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TioMeko/Property-Management/internal/domain"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// --- Mock Invoice Repository ---

type mockInvoiceRepository struct {
	mock.Mock
}

func (m *mockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) List(ctx context.Context, tenantID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Invoice, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func validInvoiceInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		InvoiceNumber: "INV-2025-001",
		TenantID:      "tenant-1",
		IssueDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		LineItems: []domain.LineItem{
			{Title: "March rent", Amount: 150000},
			{Title: "Parking", Amount: 10000},
		},
	}
}

func TestCreateInvoice_Success(t *testing.T) {
	repo := new(mockInvoiceRepository)
	svc := NewInvoiceService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	invoice, err := svc.Create(ctx, validInvoiceInput())

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status, "status defaults to draft")
	assert.Equal(t, int64(160000), invoice.TotalAmount())
	repo.AssertExpectations(t)
}

func TestCreateInvoice_NoLineItems(t *testing.T) {
	repo := new(mockInvoiceRepository)
	svc := NewInvoiceService(repo, newTestLogger())

	input := validInvoiceInput()
	input.LineItems = nil

	invoice, err := svc.Create(context.Background(), input)

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInvoice_NonPositiveItemAmount(t *testing.T) {
	repo := new(mockInvoiceRepository)
	svc := NewInvoiceService(repo, newTestLogger())

	input := validInvoiceInput()
	input.LineItems[1].Amount = 0

	invoice, err := svc.Create(context.Background(), input)

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetInvoice_TenantOwnership(t *testing.T) {
	repo := new(mockInvoiceRepository)
	svc := NewInvoiceService(repo, newTestLogger())
	ctx := context.Background()

	invoice := &domain.Invoice{ID: "inv-1", TenantID: "tenant-1"}
	repo.On("GetByID", ctx, "inv-1").Return(invoice, nil)

	// Owner reads fine.
	got, err := svc.Get(ctx, "inv-1", "tenant-1", domain.RoleTenant)
	require.NoError(t, err)
	assert.Equal(t, "inv-1", got.ID)

	// Another tenant is rejected.
	got, err = svc.Get(ctx, "inv-1", "tenant-2", domain.RoleTenant)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// A landlord can read any invoice.
	got, err = svc.Get(ctx, "inv-1", "landlord-1", domain.RoleLandlord)
	require.NoError(t, err)
	assert.Equal(t, "inv-1", got.ID)
}
