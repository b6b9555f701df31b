package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses. A milestone is settled once a payment with
// PaymentStatusCompleted exists for it.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
)

// Payment represents the structure of a payment attempt in the database.
// One milestone may accumulate any number of attempts.
type Payment struct {
	ID            uuid.UUID  `json:"id,omitempty"`
	ProjectID     uuid.UUID  `json:"project_id"`
	MilestoneID   *uuid.UUID `json:"milestone_id,omitempty"` // Nullable foreign key
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	PaymentMethod *string    `json:"payment_method,omitempty"` // Nullable TEXT
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
}

// PaymentIntent describes a processor-side intent created by the
// create-payment-intent function. Amounts are already in minor currency
// units when they reach the processor; conversion is the caller's job.
type PaymentIntent struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    *string `json:"clientSecret,omitempty"`
	Amount          int64   `json:"amount"`
	Currency        string  `json:"currency"`
	Status          *string `json:"status,omitempty"`
}
