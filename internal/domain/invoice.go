package domain

import (
	"encoding/json"
	"time"
)

// Invoice status values.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusVoid    = "void"
)

// LineItem is one billable entry on an invoice.
type LineItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount"`
}

// Invoice is an itemized bill for a tenant. Every invoice carries at least
// one line item; the total is always derived, never stored.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	TenantID      string     `json:"tenant_id"`
	LeaseID       string     `json:"lease_id,omitempty"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       time.Time  `json:"due_date"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	LineItems     []LineItem `json:"line_items"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TotalAmount sums the invoice's line items.
func (i *Invoice) TotalAmount() int64 {
	var total int64
	for _, item := range i.LineItems {
		total += item.Amount
	}
	return total
}

// MarshalJSON adds the derived total to the wire form so clients never have
// to re-sum line items.
func (i Invoice) MarshalJSON() ([]byte, error) {
	type invoiceAlias Invoice
	return json.Marshal(struct {
		invoiceAlias
		TotalAmount int64 `json:"total_amount"`
	}{invoiceAlias(i), i.TotalAmount()})
}

// ValidInvoiceStatus checks an invoice status value.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}
