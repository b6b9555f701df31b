package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProjectDashboard is one aggregated row from the project_dashboard_view,
// carrying the project header plus its nested collections.
type ProjectDashboard struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Status      *string         `json:"status,omitempty"`
	Milestones  []Milestone     `json:"milestones,omitempty"`
	Files       []ProjectFile   `json:"files,omitempty"`
	Payments    []Payment       `json:"payments,omitempty"`
	Events      json.RawMessage `json:"events,omitempty"` // Nullable JSONB
	CreatedAt   time.Time       `json:"created_at"`
}

// TeamMember is one row from the project_team_members_view roster.
type TeamMember struct {
	TeamMemberID uuid.UUID `json:"team_member_id"`
	TeamID       uuid.UUID `json:"team_id"`
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Role         *string   `json:"role,omitempty"`
}
