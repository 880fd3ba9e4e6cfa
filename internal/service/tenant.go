package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/TioMeko/Property-Management/internal/domain"
	"github.com/TioMeko/Property-Management/internal/repository"
)

// TenantService produces the tenant dashboard summary.
type TenantService struct {
	payments repository.PaymentRepository
	notices  repository.NoticeRepository
	logger   *slog.Logger
}

// NewTenantService creates a new tenant service.
func NewTenantService(payments repository.PaymentRepository, notices repository.NoticeRepository, logger *slog.Logger) *TenantService {
	return &TenantService{payments: payments, notices: notices, logger: logger}
}

// Summary computes the tenant's current obligation from their full payment
// history. The result is recomputed on every call; it is a pure function of
// the payment set, never cached.
//
// Only the single earliest pending payment counts toward totalDue alongside
// the full overdue total. Summing every pending payment would change the
// dashboard numbers tenants already see, so the narrower rule is kept.
func (s *TenantService) Summary(ctx context.Context, tenantID string) (*domain.TenantSummary, error) {
	payments, err := s.payments.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	var overdueAmount int64
	var pending []domain.Payment
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentStatusOverdue:
			overdueAmount += p.Amount
		case domain.PaymentStatusPending:
			pending = append(pending, p)
		}
	}

	summary := &domain.TenantSummary{
		OverdueAmount: overdueAmount,
	}

	if len(pending) > 0 {
		// Stable so that equal due dates resolve to the first payment in
		// store order, keeping repeated calls byte-identical.
		sort.SliceStable(pending, func(i, j int) bool {
			return pending[i].Date.Before(pending[j].Date)
		})
		next := pending[0]
		due := next.Date
		summary.NextDueDate = &due
		summary.NextDueAmount = next.Amount
	}

	summary.TotalDue = summary.OverdueAmount + summary.NextDueAmount

	notices, err := s.notices.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	summary.Notices = make([]domain.NoticeView, 0, len(notices))
	for _, n := range notices {
		summary.Notices = append(summary.Notices, n.View())
	}

	return summary, nil
}
