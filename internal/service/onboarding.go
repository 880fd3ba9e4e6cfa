package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/repository"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// OnboardingService persists partially completed onboarding flows so users
// can resume where they left off.
type OnboardingService struct {
	drafts repository.OnboardingRepository
	logger *slog.Logger
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(drafts repository.OnboardingRepository, logger *slog.Logger) *OnboardingService {
	return &OnboardingService{drafts: drafts, logger: logger}
}

// Get returns the user's draft, or ErrNotFound when none exists.
func (s *OnboardingService) Get(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	return s.drafts.GetByUserID(ctx, userID)
}

// SaveStep records progress through the onboarding flow. The step counter
// only moves forward and the submitted data is shallow-merged over whatever
// was saved before, so re-submitting an earlier step cannot lose progress.
func (s *OnboardingService) SaveStep(ctx context.Context, userID string, step int, data map[string]any) (*domain.OnboardingDraft, error) {
	if step < 0 {
		return nil, apperrors.InvalidInput("step must not be negative")
	}

	now := time.Now().UTC()

	draft, err := s.drafts.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		draft = &domain.OnboardingDraft{
			ID:            uuid.New().String(),
			UserID:        userID,
			StepCompleted: step,
			Data:          map[string]any{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		for k, v := range data {
			draft.Data[k] = v
		}
		if err := s.drafts.Create(ctx, draft); err != nil {
			return nil, fmt.Errorf("create onboarding draft: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load onboarding draft: %w", err)
	default:
		if step > draft.StepCompleted {
			draft.StepCompleted = step
		}
		if draft.Data == nil {
			draft.Data = map[string]any{}
		}
		for k, v := range data {
			draft.Data[k] = v
		}
		draft.UpdatedAt = now
		if err := s.drafts.Update(ctx, draft); err != nil {
			return nil, fmt.Errorf("update onboarding draft: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "onboarding step saved",
		slog.String("user_id", userID),
		slog.Int("step", draft.StepCompleted),
	)

	return draft, nil
}
