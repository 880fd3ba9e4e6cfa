package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TioMeko/Property-Management/internal/domain"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// --- Mock Onboarding Repository ---

type mockOnboardingRepository struct {
	mock.Mock
}

func (m *mockOnboardingRepository) GetByUserID(ctx context.Context, userID string) (*domain.OnboardingDraft, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OnboardingDraft), args.Error(1)
}

func (m *mockOnboardingRepository) Create(ctx context.Context, draft *domain.OnboardingDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *mockOnboardingRepository) Update(ctx context.Context, draft *domain.OnboardingDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func TestSaveStep_CreatesDraft(t *testing.T) {
	repo := new(mockOnboardingRepository)
	svc := NewOnboardingService(repo, newTestLogger())
	ctx := context.Background()

	repo.On("GetByUserID", ctx, "user-1").Return(nil, apperrors.ErrNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.OnboardingDraft")).Return(nil)

	draft, err := svc.SaveStep(ctx, "user-1", 1, map[string]any{"name": "Maria"})

	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, "user-1", draft.UserID)
	assert.Equal(t, 1, draft.StepCompleted)
	assert.Equal(t, "Maria", draft.Data["name"])
	repo.AssertExpectations(t)
}

func TestSaveStep_MergesDataAndAdvances(t *testing.T) {
	repo := new(mockOnboardingRepository)
	svc := NewOnboardingService(repo, newTestLogger())
	ctx := context.Background()

	existing := &domain.OnboardingDraft{
		ID:            "draft-1",
		UserID:        "user-1",
		StepCompleted: 1,
		Data:          map[string]any{"name": "Maria", "unit": "4B"},
	}
	repo.On("GetByUserID", ctx, "user-1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.OnboardingDraft")).Return(nil)

	draft, err := svc.SaveStep(ctx, "user-1", 2, map[string]any{"name": "Maria S.", "phone": "555-0101"})

	require.NoError(t, err)
	assert.Equal(t, 2, draft.StepCompleted)
	assert.Equal(t, "Maria S.", draft.Data["name"], "resubmitted key overwrites")
	assert.Equal(t, "4B", draft.Data["unit"], "untouched key survives")
	assert.Equal(t, "555-0101", draft.Data["phone"])
	repo.AssertExpectations(t)
}

func TestSaveStep_StepNeverMovesBackward(t *testing.T) {
	repo := new(mockOnboardingRepository)
	svc := NewOnboardingService(repo, newTestLogger())
	ctx := context.Background()

	existing := &domain.OnboardingDraft{
		ID:            "draft-1",
		UserID:        "user-1",
		StepCompleted: 3,
		Data:          map[string]any{},
	}
	repo.On("GetByUserID", ctx, "user-1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.OnboardingDraft")).Return(nil)

	draft, err := svc.SaveStep(ctx, "user-1", 1, map[string]any{"extra": true})

	require.NoError(t, err)
	assert.Equal(t, 3, draft.StepCompleted)
	assert.Equal(t, true, draft.Data["extra"], "data still merges on an earlier step")
}

func TestSaveStep_NegativeStep(t *testing.T) {
	repo := new(mockOnboardingRepository)
	svc := NewOnboardingService(repo, newTestLogger())

	draft, err := svc.SaveStep(context.Background(), "user-1", -1, nil)

	assert.Nil(t, draft)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}
