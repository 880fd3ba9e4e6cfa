package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TioMeko/Property-Management/internal/domain"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

func newLeaseTestFixture(t *testing.T) (*LeaseRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewLeaseRepository(mock)
	return repo, mock
}

func sampleLease() *domain.Lease {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Lease{
		ID:            "2a4b6c8d-0e1f-4a3b-9c5d-7e9f1a2b3c4d",
		TenantID:      "5d7b73c5-98a4-4b4c-8f2c-1f3a9f3e9a01",
		LandlordID:    "8e0f2a4b-6c8d-4e1f-a3b5-c7d9e1f2a3b4",
		Unit:          "4B",
		StartDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		RentAmount:    150000,
		DepositAmount: 150000,
		LeaseType:     domain.LeaseTypeFixed,
		PaymentDueDay: 1,
		GracePeriod:   5,
		Status:        domain.LeaseStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func leaseColumnNames() []string {
	return []string{
		"id", "tenant_id", "landlord_id", "unit", "start_date", "end_date",
		"rent_amount", "deposit_amount", "lease_type", "payment_due_day",
		"grace_period", "status", "terms_url", "created_at", "updated_at",
	}
}

func leaseRows(leases ...*domain.Lease) *pgxmock.Rows {
	rows := pgxmock.NewRows(leaseColumnNames())
	for _, l := range leases {
		rows.AddRow(l.ID, l.TenantID, l.LandlordID, l.Unit, l.StartDate, l.EndDate,
			l.RentAmount, l.DepositAmount, l.LeaseType, l.PaymentDueDay,
			l.GracePeriod, l.Status, l.TermsURL, l.CreatedAt, l.UpdatedAt)
	}
	return rows
}

func TestLeaseRepository_UpdateStatus_ReturnsUpdatedRow(t *testing.T) {
	repo, mock := newLeaseTestFixture(t)
	defer mock.Close()

	l := sampleLease()
	l.Status = domain.LeaseStatusEnded

	mock.ExpectQuery("UPDATE leases").
		WithArgs(domain.LeaseStatusEnded, pgxmock.AnyArg(), l.ID).
		WillReturnRows(leaseRows(l))

	updated, err := repo.UpdateStatus(context.Background(), l.ID, domain.LeaseStatusEnded)
	require.NoError(t, err)
	assert.Equal(t, domain.LeaseStatusEnded, updated.Status)
	assert.Equal(t, l.ID, updated.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseRepository_UpdateStatus_SecondActiveIsConflict(t *testing.T) {
	repo, mock := newLeaseTestFixture(t)
	defer mock.Close()

	l := sampleLease()

	mock.ExpectQuery("UPDATE leases").
		WithArgs(domain.LeaseStatusActive, pgxmock.AnyArg(), l.ID).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_leases_one_active_per_tenant" (SQLSTATE 23505)`))

	updated, err := repo.UpdateStatus(context.Background(), l.ID, domain.LeaseStatusActive)
	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaseRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newLeaseTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE leases").
		WithArgs(domain.LeaseStatusEnded, pgxmock.AnyArg(), "missing-id").
		WillReturnRows(pgxmock.NewRows(leaseColumnNames()))

	updated, err := repo.UpdateStatus(context.Background(), "missing-id", domain.LeaseStatusEnded)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
