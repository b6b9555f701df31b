package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/internal/progress"
	"teambridge/api-gateway/utils"
)

// GetProjectDashboard returns the aggregated dashboard record for a project
// together with the derived payment summary.
func (h *ApplicationHandler) GetProjectDashboard(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	board, err := h.Dashboard.FetchProjectDashboard(c.Context(), projectID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", projectID))
		}
		h.Logger.Errorf("Error fetching dashboard for project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve dashboard: %v", err))
	}

	summary := progress.Summarize(board.Milestones, board.Payments)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"dashboard": board,
		"progress": fiber.Map{
			"total_amount":       summary.TotalAmount,
			"completed_amount":   summary.CompletedAmount,
			"total_paid":         summary.TotalPaid,
			"remaining":          summary.Remaining,
			"completion_percent": summary.CompletionPercent,
			"timeline":           progress.ProjectTimeline(board.CreatedAt, board.Milestones, time.Now()),
		},
	})
}

// GetProjectTeam returns the project's roster from the team members view.
func (h *ApplicationHandler) GetProjectTeam(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	members, err := h.Dashboard.FetchTeamMembers(c.Context(), projectID)
	if err != nil {
		h.Logger.Errorf("Error fetching team members for project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve team members: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, members)
}
