package domain

import "time"

// Payment status values. Status is mutated by operators (or a billing job
// outside this service); the amount is immutable once created.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"
)

// Payment method values.
const (
	PaymentMethodACH   = "ach"
	PaymentMethodCard  = "card"
	PaymentMethodCash  = "cash"
	PaymentMethodOther = "other"
)

// Payment is one billing-cycle obligation for a tenant. Amounts are in minor
// currency units.
type Payment struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	LeaseID   string    `json:"lease_id,omitempty"`
	Date      time.Time `json:"date"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidPaymentStatus checks a payment status value.
func ValidPaymentStatus(s string) bool {
	return s == PaymentStatusPaid || s == PaymentStatusPending || s == PaymentStatusOverdue
}

// ValidPaymentMethod checks a payment method value.
func ValidPaymentMethod(m string) bool {
	return m == PaymentMethodACH || m == PaymentMethodCard || m == PaymentMethodCash || m == PaymentMethodOther
}
