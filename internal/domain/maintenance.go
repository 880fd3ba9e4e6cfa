package domain

import "time"

// Maintenance request status values.
const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
)

// MaintenanceRequest is a tenant-filed repair ticket.
type MaintenanceRequest struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	IssueType   string    `json:"issue_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidMaintenanceStatus checks a maintenance status value.
func ValidMaintenanceStatus(s string) bool {
	return s == MaintenanceStatusPending || s == MaintenanceStatusInProgress || s == MaintenanceStatusCompleted
}
