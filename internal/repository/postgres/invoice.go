package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/pkg/database"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// lease_id is a nullable UUID column; an unlinked invoice reads back as ''.
const invoiceColumns = `id, invoice_number, tenant_id, COALESCE(lease_id::text, '') AS lease_id, issue_date, due_date,
		status, notes, line_items, created_at, updated_at`

// InvoiceRepository implements repository.InvoiceRepository using PostgreSQL.
// Line items are stored as a JSONB column.
type InvoiceRepository struct {
	db database.DBTX
}

// NewInvoiceRepository creates a new PostgreSQL-backed invoice repository.
func NewInvoiceRepository(db database.DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	itemsJSON, err := json.Marshal(inv.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line_items: %w", err)
	}

	query := `
		INSERT INTO invoices (id, invoice_number, tenant_id, lease_id, issue_date,
			due_date, status, notes, line_items, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.Exec(ctx, query,
		inv.ID,
		inv.InvoiceNumber,
		inv.TenantID,
		inv.LeaseID,
		inv.IssueDate,
		inv.DueDate,
		inv.Status,
		inv.Notes,
		itemsJSON,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict(fmt.Sprintf("invoice number %q already exists", inv.InvoiceNumber))
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

// GetByID retrieves an invoice by its identifier.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE id = $1`

	return r.scanInvoice(ctx, query, id)
}

// List returns invoices sorted by due date ascending. An empty tenantID
// returns every invoice.
func (r *InvoiceRepository) List(ctx context.Context, tenantID string) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR tenant_id = $1)
		ORDER BY due_date ASC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var itemsJSON []byte
		if err := rows.Scan(
			&inv.ID,
			&inv.InvoiceNumber,
			&inv.TenantID,
			&inv.LeaseID,
			&inv.IssueDate,
			&inv.DueDate,
			&inv.Status,
			&inv.Notes,
			&itemsJSON,
			&inv.CreatedAt,
			&inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &inv.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line_items: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}

	if invoices == nil {
		invoices = []domain.Invoice{}
	}

	return invoices, nil
}

// UpdateStatus sets an invoice's status and returns the updated row.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Invoice, error) {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + invoiceColumns

	return r.scanInvoice(ctx, query, status, time.Now().UTC(), id)
}

func (r *InvoiceRepository) scanInvoice(ctx context.Context, query string, args ...any) (*domain.Invoice, error) {
	var inv domain.Invoice
	var itemsJSON []byte

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.TenantID,
		&inv.LeaseID,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Status,
		&inv.Notes,
		&itemsJSON,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &inv.LineItems); err != nil {
		return nil, fmt.Errorf("unmarshal line_items: %w", err)
	}

	return &inv, nil
}
