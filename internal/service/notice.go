package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/repository"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// NoticeService manages dashboard announcements.
type NoticeService struct {
	notices repository.NoticeRepository
	logger  *slog.Logger
}

// NewNoticeService creates a new notice service.
func NewNoticeService(notices repository.NoticeRepository, logger *slog.Logger) *NoticeService {
	return &NoticeService{notices: notices, logger: logger}
}

// CreateNoticeInput holds the parameters for publishing a notice.
type CreateNoticeInput struct {
	Title     string
	Body      string
	StartDate time.Time
	EndDate   *time.Time
}

// Create publishes a new active notice.
func (s *NoticeService) Create(ctx context.Context, input CreateNoticeInput) (*domain.Notice, error) {
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, apperrors.InvalidInput("end date must be after start date")
	}

	notice := &domain.Notice{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Body:      input.Body,
		Active:    true,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.notices.Create(ctx, notice); err != nil {
		return nil, fmt.Errorf("create notice: %w", err)
	}

	s.logger.InfoContext(ctx, "notice published",
		slog.String("notice_id", notice.ID),
		slog.String("title", notice.Title),
	)

	return notice, nil
}

// ListActive returns active notices newest-first.
func (s *NoticeService) ListActive(ctx context.Context) ([]domain.Notice, error) {
	return s.notices.ListActive(ctx)
}

// Deactivate retires a notice from dashboards.
func (s *NoticeService) Deactivate(ctx context.Context, id string) error {
	if err := s.notices.Deactivate(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "notice deactivated",
		slog.String("notice_id", id),
	)

	return nil
}
