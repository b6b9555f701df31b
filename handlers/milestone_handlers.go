package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/models"
	"teambridge/api-gateway/utils"
)

// ListMilestones returns a project's milestones ordered by due date.
func (h *ApplicationHandler) ListMilestones(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	listed, err := h.Milestones.ListByProject(c.Context(), projectID)
	if err != nil {
		h.Logger.Errorf("Error listing milestones for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not retrieve milestones: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, listed)
}

// CreateMilestonePayload defines the expected JSON structure for creating a
// milestone. New milestones always start in pending status.
type CreateMilestonePayload struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
}

// CreateMilestone adds a milestone to a project.
func (h *ApplicationHandler) CreateMilestone(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(CreateMilestonePayload)
	if err := c.BodyParser(payload); err != nil {
		h.Logger.Errorf("Error parsing milestone payload for project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	created, err := h.Milestones.Create(c.Context(), h.identity(c), models.Milestone{
		ProjectID:   projectID,
		Title:       payload.Title,
		Description: payload.Description,
		DueDate:     payload.DueDate,
		Amount:      payload.Amount,
	})
	if err != nil {
		h.Logger.Errorf("Error creating milestone for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not create milestone: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, created)
}

// UpdateMilestoneStatusPayload defines the expected JSON structure for a
// user-driven status transition. paid is not accepted here; it is set by the
// payment flow.
type UpdateMilestoneStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// UpdateMilestoneStatus applies a forward status transition to a milestone.
func (h *ApplicationHandler) UpdateMilestoneStatus(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	milestoneIDStr := c.Params("milestoneId")
	milestoneID, err := uuid.Parse(milestoneIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid milestone ID format")
	}

	payload := new(UpdateMilestoneStatusPayload)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	updated, err := h.Milestones.UpdateStatus(c.Context(), h.identity(c), projectID, milestoneID, payload.Status)
	if err != nil {
		h.Logger.Errorf("Error updating milestone %s status for project %s: %v", milestoneID, projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not update milestone: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}
