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

// lease_id is a nullable UUID column; an unlinked payment reads back as ''.
const paymentColumns = `id, tenant_id, COALESCE(lease_id::text, '') AS lease_id, date, amount, status, method, created_at, updated_at`

// PaymentRepository implements repository.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	db database.DBTX
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(db database.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment record.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, tenant_id, lease_id, date, amount, status, method, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.TenantID,
		p.LeaseID,
		p.Date,
		p.Amount,
		p.Status,
		p.Method,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by its identifier.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1`

	return r.scanPayment(ctx, query, id)
}

// ListByTenant returns the tenant's full payment history. Ordering by date
// then id keeps the result deterministic for equal dates, which the summary
// computation relies on.
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1
		ORDER BY date ASC, id ASC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID,
			&p.TenantID,
			&p.LeaseID,
			&p.Date,
			&p.Amount,
			&p.Status,
			&p.Method,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	if payments == nil {
		payments = []domain.Payment{}
	}

	return payments, nil
}

// UpdateStatus sets a payment's status and returns the updated row. The
// amount column is deliberately untouched.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Payment, error) {
	query := `
		UPDATE payments
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + paymentColumns

	return r.scanPayment(ctx, query, status, time.Now().UTC(), id)
}

func (r *PaymentRepository) scanPayment(ctx context.Context, query string, args ...any) (*domain.Payment, error) {
	var p domain.Payment

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.TenantID,
		&p.LeaseID,
		&p.Date,
		&p.Amount,
		&p.Status,
		&p.Method,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	return &p, nil
}
