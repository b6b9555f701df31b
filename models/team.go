package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents the structure of a team row in the database.
type Team struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Skills            []string  `json:"skills,omitempty"`
	Rating            *float64  `json:"rating,omitempty"`             // Nullable FLOAT
	CompletedProjects *int      `json:"completed_projects,omitempty"` // Nullable INTEGER
	HourlyRate        *float64  `json:"hourly_rate,omitempty"`        // Nullable FLOAT
	Availability      *string   `json:"availability,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
