package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents the structure of a project in the database.
type Project struct {
	ID             uuid.UUID `json:"id,omitempty"`
	ClientID       uuid.UUID `json:"client_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"` // Use a pointer for nullable TEXT fields
	Status         *string   `json:"status,omitempty"`      // Use a pointer for nullable TEXT fields
	RequiredSkills []string  `json:"required_skills,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
