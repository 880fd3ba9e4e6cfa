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

// --- Mock Lease Repository ---

type mockLeaseRepository struct {
	mock.Mock
}

func (m *mockLeaseRepository) Create(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *mockLeaseRepository) GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *mockLeaseRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *mockLeaseRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Lease, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func validLeaseInput() CreateLeaseInput {
	return CreateLeaseInput{
		TenantID:      "tenant-1",
		LandlordID:    "landlord-1",
		Unit:          "4B",
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		RentAmount:    150000,
		DepositAmount: 150000,
		Status:        domain.LeaseStatusActive,
	}
}

func TestCreateLease_Active(t *testing.T) {
	leaseRepo := new(mockLeaseRepository)
	svc := NewLeaseService(leaseRepo, newTestLogger())
	ctx := context.Background()

	leaseRepo.On("GetActiveByTenant", ctx, "tenant-1").Return(nil, apperrors.ErrNotFound)
	leaseRepo.On("Create", ctx, mock.AnythingOfType("*domain.Lease")).Return(nil)

	lease, err := svc.Create(ctx, validLeaseInput())

	require.NoError(t, err)
	assert.NotEmpty(t, lease.ID)
	assert.Equal(t, domain.LeaseStatusActive, lease.Status)
	assert.Equal(t, domain.LeaseTypeFixed, lease.LeaseType, "lease type defaults to fixed")
	leaseRepo.AssertExpectations(t)
}

func TestCreateLease_SecondActiveRejected(t *testing.T) {
	leaseRepo := new(mockLeaseRepository)
	svc := NewLeaseService(leaseRepo, newTestLogger())
	ctx := context.Background()

	existing := &domain.Lease{ID: "lease-1", TenantID: "tenant-1", Status: domain.LeaseStatusActive}
	leaseRepo.On("GetActiveByTenant", ctx, "tenant-1").Return(existing, nil)

	lease, err := svc.Create(ctx, validLeaseInput())

	assert.Nil(t, lease)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	leaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLease_PendingSkipsActiveCheck(t *testing.T) {
	leaseRepo := new(mockLeaseRepository)
	svc := NewLeaseService(leaseRepo, newTestLogger())
	ctx := context.Background()

	leaseRepo.On("Create", ctx, mock.AnythingOfType("*domain.Lease")).Return(nil)

	input := validLeaseInput()
	input.Status = domain.LeaseStatusPending

	lease, err := svc.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, domain.LeaseStatusPending, lease.Status)
	leaseRepo.AssertNotCalled(t, "GetActiveByTenant", mock.Anything, mock.Anything)
}

func TestCreateLease_EndBeforeStart(t *testing.T) {
	leaseRepo := new(mockLeaseRepository)
	svc := NewLeaseService(leaseRepo, newTestLogger())

	input := validLeaseInput()
	input.EndDate = input.StartDate.Add(-24 * time.Hour)

	lease, err := svc.Create(context.Background(), input)

	assert.Nil(t, lease)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateLeaseStatus_InvalidStatus(t *testing.T) {
	leaseRepo := new(mockLeaseRepository)
	svc := NewLeaseService(leaseRepo, newTestLogger())

	lease, err := svc.UpdateStatus(context.Background(), "lease-1", "cancelled")

	assert.Nil(t, lease)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	leaseRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
