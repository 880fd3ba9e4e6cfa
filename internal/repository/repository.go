package repository

import (
	"context"

	"github.com/TioMeko/Property-Management/internal/domain"
)

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicateEmail (wrapped) when the
	// email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// LeaseRepository defines the interface for lease persistence.
type LeaseRepository interface {
	// Create inserts a new lease.
	Create(ctx context.Context, lease *domain.Lease) error

	// GetActiveByTenant returns the tenant's active lease, or ErrNotFound.
	GetActiveByTenant(ctx context.Context, tenantID string) (*domain.Lease, error)

	// ListByTenant returns all leases for the tenant, newest first.
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Lease, error)

	// UpdateStatus transitions a lease's status.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Lease, error)
}

// PaymentRepository defines the interface for payment persistence.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// ListByTenant returns the tenant's full payment history ordered by date.
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error)

	// UpdateStatus sets a payment's status. The amount is never updated.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Payment, error)
}

// InvoiceRepository defines the interface for invoice persistence.
type InvoiceRepository interface {
	// Create inserts a new invoice. Returns a conflict error (wrapped
	// ErrConflict) when the invoice number is already used.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)

	// List returns invoices sorted by due date ascending. An empty tenantID
	// returns every invoice.
	List(ctx context.Context, tenantID string) ([]domain.Invoice, error)

	// UpdateStatus sets an invoice's status.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Invoice, error)
}

// NoticeRepository defines the interface for notice persistence.
type NoticeRepository interface {
	// Create inserts a new notice.
	Create(ctx context.Context, notice *domain.Notice) error

	// ListActive returns active notices sorted newest-first.
	ListActive(ctx context.Context) ([]domain.Notice, error)

	// Deactivate marks a notice inactive.
	Deactivate(ctx context.Context, id string) error
}

// MaintenanceRepository defines the interface for maintenance ticket persistence.
type MaintenanceRepository interface {
	// Create inserts a new maintenance request.
	Create(ctx context.Context, req *domain.MaintenanceRequest) error

	// List returns maintenance requests newest-first. An empty tenantID
	// returns every request.
	List(ctx context.Context, tenantID string) ([]domain.MaintenanceRequest, error)

	// UpdateStatus transitions a request's status.
	UpdateStatus(ctx context.Context, id, status string) (*domain.MaintenanceRequest, error)
}

// OnboardingRepository defines the interface for onboarding draft persistence.
type OnboardingRepository interface {
	// GetByUserID returns the user's draft, or ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*domain.OnboardingDraft, error)

	// Create inserts a new draft.
	Create(ctx context.Context, draft *domain.OnboardingDraft) error

	// Update overwrites an existing draft's step and data.
	Update(ctx context.Context, draft *domain.OnboardingDraft) error
}
