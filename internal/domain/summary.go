package domain

import "time"

// NoticeView is the notice shape embedded in the tenant summary.
type NoticeView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// TenantSummary is the derived financial view for a tenant dashboard. It is
// recomputed from the payment set on every request and never persisted.
//
// TotalDue combines the full overdue total with only the single nearest
// pending payment. A tenant with several future pending payments therefore
// shows less than the sum of everything pending.
type TenantSummary struct {
	NextDueDate   *time.Time   `json:"nextDueDate"`
	NextDueAmount int64        `json:"nextDueAmount"`
	OverdueAmount int64        `json:"overdueAmount"`
	TotalDue      int64        `json:"totalDue"`
	Notices       []NoticeView `json:"notices"`
}
