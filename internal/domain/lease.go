package domain

import "time"

// Lease status values.
const (
	LeaseStatusActive  = "active"
	LeaseStatusPending = "pending"
	LeaseStatusEnded   = "ended"
)

// Lease type values.
const (
	LeaseTypeFixed        = "fixed"
	LeaseTypeMonthToMonth = "month_to_month"
)

// Lease ties a tenant (and landlord) to a unit for a term. A tenant holds at
// most one active lease at a time; the store enforces this with a partial
// unique index and the service checks it again at creation.
type Lease struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	LandlordID    string    `json:"landlord_id"`
	Unit          string    `json:"unit"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	RentAmount    int64     `json:"rent_amount"`
	DepositAmount int64     `json:"deposit_amount"`
	LeaseType     string    `json:"lease_type"`
	PaymentDueDay int       `json:"payment_due_day"`
	GracePeriod   int       `json:"grace_period"`
	Status        string    `json:"status"`
	TermsURL      string    `json:"terms_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidLeaseStatus checks a lease status value.
func ValidLeaseStatus(s string) bool {
	return s == LeaseStatusActive || s == LeaseStatusPending || s == LeaseStatusEnded
}

// ValidLeaseType checks a lease type value.
func ValidLeaseType(t string) bool {
	return t == LeaseTypeFixed || t == LeaseTypeMonthToMonth
}

// LeaseSummary is the condensed lease view shown on the tenant dashboard.
type LeaseSummary struct {
	Unit      string    `json:"unit"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Rent      int64     `json:"rent"`
	Deposit   int64     `json:"deposit"`
	Status    string    `json:"status"`
	TermsURL  string    `json:"termsUrl,omitempty"`
}

// Summary returns the dashboard view of the lease.
func (l *Lease) Summary() LeaseSummary {
	return LeaseSummary{
		Unit:      l.Unit,
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Rent:      l.RentAmount,
		Deposit:   l.DepositAmount,
		Status:    l.Status,
		TermsURL:  l.TermsURL,
	}
}
