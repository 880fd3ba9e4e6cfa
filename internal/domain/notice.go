package domain

import "time"

// Notice is an announcement shown on tenant dashboards. Notices are
// independent of payments and never affect the financial numbers.
type Notice struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Active    bool       `json:"active"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"-"`
}

// View trims a notice to the shape embedded in the tenant summary.
func (n *Notice) View() NoticeView {
	return NoticeView{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		StartDate: n.StartDate,
		EndDate:   n.EndDate,
	}
}
