package models

import (
	"time"

	"github.com/google/uuid"
)

// Milestone statuses. Status moves forward only; StatusPaid is reachable
// solely through the payment flow, never by a direct user edit.
const (
	MilestoneStatusPending    = "pending"
	MilestoneStatusInProgress = "in_progress"
	MilestoneStatusCompleted  = "completed"
	MilestoneStatusPaid       = "paid"
)

// Milestone represents the structure of a billable milestone in the database.
type Milestone struct {
	ID          uuid.UUID  `json:"id,omitempty"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"` // Nullable TIMESTAMPTZ
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
