package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser represents the structure of a privileged-user row returned by the
// admin-user-management function. An active row is the sole authorization
// signal for admin-gated actions; the check itself happens server-side.
type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  *bool     `json:"is_active,omitempty"` // Nullable BOOLEAN
	CreatedAt time.Time `json:"created_at"`
}

// AdminListResponse is the envelope returned by the admin-user-management
// function for the list action.
type AdminListResponse struct {
	Admins []AdminUser `json:"admins"`
}
