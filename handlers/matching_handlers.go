package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/internal/matching"
	"teambridge/api-gateway/utils"
)

// MatchTeamsRequest defines the optional matching context sent along with the
// project id.
type MatchTeamsRequest struct {
	Requirements    []string               `json:"requirements,omitempty"`
	UserPreferences map[string]interface{} `json:"user_preferences,omitempty"`
}

// MatchTeams invokes the remote matching function for a project and returns
// the ranked candidates unchanged.
func (h *ApplicationHandler) MatchTeams(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(MatchTeamsRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		}
	}

	teams, err := h.Matching.MatchTeams(c.Context(), h.identity(c), matching.MatchRequest{
		ProjectID:       projectID,
		Requirements:    payload.Requirements,
		UserPreferences: payload.UserPreferences,
	})
	if err != nil {
		h.Logger.Errorf("Error matching teams for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not match teams: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, teams)
}

// SelectTeamRequest defines the expected JSON structure for committing a
// match decision.
type SelectTeamRequest struct {
	TeamID uuid.UUID `json:"team_id" validate:"required"`
}

// SelectTeam commits the match decision for a project.
func (h *ApplicationHandler) SelectTeam(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(SelectTeamRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	selection, err := h.Matching.SelectTeam(c.Context(), h.identity(c), projectID, payload.TeamID)
	if err != nil {
		h.Logger.Errorf("Error selecting team %s for project %s: %v", payload.TeamID, projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not select team: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, selection)
}

// SendProjectInterest notifies the project's client that a team is
// interested.
func (h *ApplicationHandler) SendProjectInterest(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	payload := new(SelectTeamRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	if err := h.Matching.SendProjectInterest(c.Context(), h.identity(c), projectID, payload.TeamID); err != nil {
		h.Logger.Errorf("Error sending interest in project %s for team %s: %v", projectID, payload.TeamID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not send project interest: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"project_id": projectID.String(),
		"team_id":    payload.TeamID.String(),
	})
}
