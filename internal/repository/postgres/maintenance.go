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

// MaintenanceRepository implements repository.MaintenanceRepository using PostgreSQL.
type MaintenanceRepository struct {
	db database.DBTX
}

// NewMaintenanceRepository creates a new PostgreSQL-backed maintenance repository.
func NewMaintenanceRepository(db database.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Create inserts a new maintenance request.
func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (id, tenant_id, issue_type, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.TenantID,
		m.IssueType,
		m.Description,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert maintenance request: %w", err)
	}

	return nil
}

// List returns maintenance requests newest-first. An empty tenantID returns
// every request.
func (r *MaintenanceRepository) List(ctx context.Context, tenantID string) ([]domain.MaintenanceRequest, error) {
	query := `
		SELECT id, tenant_id, issue_type, description, status, created_at, updated_at
		FROM maintenance_requests
		WHERE ($1 = '' OR tenant_id = $1)
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.MaintenanceRequest
	for rows.Next() {
		var m domain.MaintenanceRequest
		if err := rows.Scan(
			&m.ID,
			&m.TenantID,
			&m.IssueType,
			&m.Description,
			&m.Status,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan maintenance row: %w", err)
		}
		requests = append(requests, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate maintenance rows: %w", err)
	}

	if requests == nil {
		requests = []domain.MaintenanceRequest{}
	}

	return requests, nil
}

// UpdateStatus transitions a request's status and returns the updated row.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.MaintenanceRequest, error) {
	query := `
		UPDATE maintenance_requests
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, tenant_id, issue_type, description, status, created_at, updated_at`

	var m domain.MaintenanceRequest
	err := r.db.QueryRow(ctx, query, status, time.Now().UTC(), id).Scan(
		&m.ID,
		&m.TenantID,
		&m.IssueType,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("update maintenance status: %w", err)
	}

	return &m, nil
}
