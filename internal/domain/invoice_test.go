package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceJSONCarriesDerivedTotal(t *testing.T) {
	inv := Invoice{
		ID:            "9f1c3b0a-5e72-4d81-b2a4-6c8d0e1f2a3b",
		InvoiceNumber: "INV-2026-0042",
		TenantID:      "5d7b73c5-98a4-4b4c-8f2c-1f3a9f3e9a01",
		IssueDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:        InvoiceStatusSent,
		LineItems: []LineItem{
			{Title: "Rent", Amount: 1000},
			{Title: "Parking", Amount: 250},
		},
	}

	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, float64(1250), got["total_amount"])
	assert.Equal(t, "INV-2026-0042", got["invoice_number"])
	assert.Len(t, got["line_items"], 2)
}

func TestInvoiceJSONTotalZeroWithoutLineItems(t *testing.T) {
	inv := &Invoice{ID: "9f1c3b0a-5e72-4d81-b2a4-6c8d0e1f2a3b", Status: InvoiceStatusDraft}

	raw, err := json.Marshal(inv)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, float64(0), got["total_amount"])
}
