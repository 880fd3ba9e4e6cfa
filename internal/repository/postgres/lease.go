package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/pkg/database"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

const leaseColumns = `id, tenant_id, landlord_id, unit, start_date, end_date,
		rent_amount, deposit_amount, lease_type, payment_due_day, grace_period,
		status, terms_url, created_at, updated_at`

// LeaseRepository implements repository.LeaseRepository using PostgreSQL.
type LeaseRepository struct {
	db database.DBTX
}

// NewLeaseRepository creates a new PostgreSQL-backed lease repository.
func NewLeaseRepository(db database.DBTX) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// Create inserts a new lease. A partial unique index on (tenant_id) WHERE
// status = 'active' backs the single-active-lease invariant; a violation is
// surfaced as a conflict.
func (r *LeaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	query := `
		INSERT INTO leases (id, tenant_id, landlord_id, unit, start_date, end_date,
			rent_amount, deposit_amount, lease_type, payment_due_day, grace_period,
			status, terms_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(ctx, query,
		l.ID,
		l.TenantID,
		l.LandlordID,
		l.Unit,
		l.StartDate,
		l.EndDate,
		l.RentAmount,
		l.DepositAmount,
		l.LeaseType,
		l.PaymentDueDay,
		l.GracePeriod,
		l.Status,
		l.TermsURL,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("tenant already has an active lease")
		}
		return fmt.Errorf("insert lease: %w", err)
	}

	return nil
}

// GetActiveByTenant returns the tenant's active lease.
func (r *LeaseRepository) GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Lease, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM leases
		WHERE tenant_id = $1 AND status = 'active'`

	return r.scanLease(ctx, query, tenantID)
}

// ListByTenant returns all leases for the tenant, newest first.
func (r *LeaseRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Lease, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM leases
		WHERE tenant_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list leases: %w", err)
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		if err := scanLeaseRow(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lease row: %w", err)
		}
		leases = append(leases, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease rows: %w", err)
	}

	if leases == nil {
		leases = []domain.Lease{}
	}

	return leases, nil
}

// UpdateStatus transitions a lease's status and returns the updated row.
// Activating a lease for a tenant who already holds an active one trips the
// partial unique index and surfaces as a conflict.
func (r *LeaseRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Lease, error) {
	query := `
		UPDATE leases
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + leaseColumns

	lease, err := r.scanLease(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("tenant already has an active lease")
		}
		return nil, err
	}

	return lease, nil
}

func (r *LeaseRepository) scanLease(ctx context.Context, query string, args ...any) (*domain.Lease, error) {
	var l domain.Lease

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&l.ID,
		&l.TenantID,
		&l.LandlordID,
		&l.Unit,
		&l.StartDate,
		&l.EndDate,
		&l.RentAmount,
		&l.DepositAmount,
		&l.LeaseType,
		&l.PaymentDueDay,
		&l.GracePeriod,
		&l.Status,
		&l.TermsURL,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan lease: %w", err)
	}

	return &l, nil
}

func scanLeaseRow(rows pgx.Rows, l *domain.Lease) error {
	return rows.Scan(
		&l.ID,
		&l.TenantID,
		&l.LandlordID,
		&l.Unit,
		&l.StartDate,
		&l.EndDate,
		&l.RentAmount,
		&l.DepositAmount,
		&l.LeaseType,
		&l.PaymentDueDay,
		&l.GracePeriod,
		&l.Status,
		&l.TermsURL,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
}
