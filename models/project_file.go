package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectFile represents the structure of a file attachment row in the database.
// URL holds the storage object path relative to the bucket root; it is both the
// storage key used at upload time and the key used when the object is removed,
// so a row exists iff the corresponding storage object exists.
type ProjectFile struct {
	ID        uuid.UUID `json:"id,omitempty"`
	ProjectID uuid.UUID `json:"project_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
