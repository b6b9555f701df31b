package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/config"
	"teambridge/api-gateway/internal/payments"
	"teambridge/api-gateway/models"
	"teambridge/api-gateway/utils"
)

var validate = validator.New()

// RecordPaymentRequest defines the expected JSON structure for recording a
// payment attempt against a project.
type RecordPaymentRequest struct {
	MilestoneID   *uuid.UUID `json:"milestone_id,omitempty"`
	Amount        float64    `json:"amount" validate:"required,gt=0"`
	Currency      string     `json:"currency,omitempty"`
	Status        string     `json:"status,omitempty" validate:"omitempty,oneof=pending processing completed failed"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
}

// RecordPayment persists a payment row for a project. Requires a signed-in
// session; the acting user, default currency and creation timestamp are
// stamped in the payment service.
func (h *ApplicationHandler) RecordPayment(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(RecordPaymentRequest)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing payment payload for project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	ident := h.identity(c)
	created, err := h.Payments.Record(c.Context(), ident, models.Payment{
		ProjectID:     projectID,
		MilestoneID:   payload.MilestoneID,
		Amount:        payload.Amount,
		Currency:      payload.Currency,
		Status:        payload.Status,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		h.Logger.Errorf("Error recording payment for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not record payment: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusCreated, created)
}

// ListPayments returns a project's payment attempts, newest first.
func (h *ApplicationHandler) ListPayments(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	listed, err := h.Payments.List(c.Context(), projectID)
	if err != nil {
		h.Logger.Errorf("Error listing payments for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not retrieve payments: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, listed)
}

// CreateIntentRequest defines the expected JSON structure for starting a
// charge. Amount must already be in minor currency units; the gateway does
// not rescale.
type CreateIntentRequest struct {
	Amount      int64                  `json:"amount" validate:"required,gt=0"`
	Currency    string                 `json:"currency,omitempty"`
	MilestoneID *uuid.UUID             `json:"milestone_id,omitempty"`
	TeamID      *uuid.UUID             `json:"team_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// CreatePaymentIntent starts a charge with the external processor through the
// create-payment-intent function.
func (h *ApplicationHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(CreateIntentRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	ident := h.identity(c)
	intent, err := h.Payments.CreateIntent(c.Context(), ident, payments.IntentRequest{
		Amount:      payload.Amount,
		Currency:    payload.Currency,
		ProjectID:   projectID,
		MilestoneID: payload.MilestoneID,
		TeamID:      payload.TeamID,
		Metadata:    payload.Metadata,
	})
	if err != nil {
		h.Logger.Errorf("Error creating payment intent for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not create payment intent: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusCreated, intent)
}

// ConfirmPaymentRequest defines the expected JSON structure for finalizing a
// charge after the processor client has confirmed it.
type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	MilestoneID     uuid.UUID `json:"milestone_id" validate:"required"`
}

// ConfirmPayment finalizes a charge with the backend and settles the
// associated milestone as paid. The legs are sequential, not atomic; a
// failure after confirmation leaves the milestone unflipped and reports it.
func (h *ApplicationHandler) ConfirmPayment(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(ConfirmPaymentRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	ident := h.identity(c)
	if err := h.Payments.Confirm(c.Context(), ident, payload.PaymentIntentID, projectID, payload.MilestoneID); err != nil {
		h.Logger.Errorf("Error confirming payment %s for project %s: %v", payload.PaymentIntentID, projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not confirm payment: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"payment_intent_id": payload.PaymentIntentID,
		"milestone_id":      payload.MilestoneID.String(),
	})
}

// PaymentConfig exposes the processor publishable key to payment clients.
func (h *ApplicationHandler) PaymentConfig(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"publishable_key": config.StripePublishableKey(),
	})
}
