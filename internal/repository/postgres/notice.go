package postgres

import (
	"context"
	"fmt"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/pkg/database"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// NoticeRepository implements repository.NoticeRepository using PostgreSQL.
type NoticeRepository struct {
	db database.DBTX
}

// NewNoticeRepository creates a new PostgreSQL-backed notice repository.
func NewNoticeRepository(db database.DBTX) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create inserts a new notice.
func (r *NoticeRepository) Create(ctx context.Context, n *domain.Notice) error {
	query := `
		INSERT INTO notices (id, title, body, active, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		n.ID,
		n.Title,
		n.Body,
		n.Active,
		n.StartDate,
		n.EndDate,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}

	return nil
}

// ListActive returns active notices sorted newest-first.
func (r *NoticeRepository) ListActive(ctx context.Context) ([]domain.Notice, error) {
	query := `
		SELECT id, title, body, active, start_date, end_date, created_at
		FROM notices
		WHERE active = true
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active notices: %w", err)
	}
	defer rows.Close()

	var notices []domain.Notice
	for rows.Next() {
		var n domain.Notice
		if err := rows.Scan(
			&n.ID,
			&n.Title,
			&n.Body,
			&n.Active,
			&n.StartDate,
			&n.EndDate,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notice row: %w", err)
		}
		notices = append(notices, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notice rows: %w", err)
	}

	if notices == nil {
		notices = []domain.Notice{}
	}

	return notices, nil
}

// Deactivate marks a notice inactive.
func (r *NoticeRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE notices SET active = false WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate notice: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("notice", id)
	}

	return nil
}
