package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/pkg/database"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// OnboardingRepository implements repository.OnboardingRepository using
// PostgreSQL. The step data blob is stored as JSONB.
type OnboardingRepository struct {
	db database.DBTX
}

// NewOnboardingRepository creates a new PostgreSQL-backed onboarding repository.
func NewOnboardingRepository(db database.DBTX) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

// GetByUserID returns the user's draft.
func (r *OnboardingRepository) GetByUserID(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	query := `
		SELECT id, user_id, step_completed, data, created_at, updated_at
		FROM onboarding_drafts
		WHERE user_id = $1`

	var d domain.OnboardingDraft
	var dataJSON []byte

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&d.ID,
		&d.UserID,
		&d.StepCompleted,
		&dataJSON,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan onboarding draft: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &d.Data); err != nil {
		return nil, fmt.Errorf("unmarshal draft data: %w", err)
	}

	return &d, nil
}

// Create inserts a new draft.
func (r *OnboardingRepository) Create(ctx context.Context, d *domain.OnboardingDraft) error {
	dataJSON, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("marshal draft data: %w", err)
	}

	query := `
		INSERT INTO onboarding_drafts (id, user_id, step_completed, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.Exec(ctx, query,
		d.ID,
		d.UserID,
		d.StepCompleted,
		dataJSON,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert onboarding draft: %w", err)
	}

	return nil
}

// Update overwrites an existing draft's step and data.
func (r *OnboardingRepository) Update(ctx context.Context, d *domain.OnboardingDraft) error {
	dataJSON, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("marshal draft data: %w", err)
	}

	query := `
		UPDATE onboarding_drafts
		SET step_completed = $1, data = $2, updated_at = $3
		WHERE id = $4`

	ct, err := r.db.Exec(ctx, query, d.StepCompleted, dataJSON, d.UpdatedAt, d.ID)
	if err != nil {
		return fmt.Errorf("update onboarding draft: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("onboarding draft", d.ID)
	}

	return nil
}
