package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
	"teambridge/api-gateway/utils"
)

const projectTable = "projects"

// CreateProjectRequest defines the expected request body for creating a project.
// Title is required. Description, status and skills are optional.
type CreateProjectRequest struct {
	Title          string   `json:"title" validate:"required"`
	Description    *string  `json:"description,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

// CreateProject creates a new project owned by the session user.
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	projectReq := new(CreateProjectRequest)
	if err := c.BodyParser(projectReq); err != nil {
		h.Logger.Errorf("Error parsing project data: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	if err := validate.Struct(projectReq); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	ident := h.identity(c)
	if ident == nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, gateway.ErrNotSignedIn.Error())
	}

	// Insert via a map so the database generates the id.
	row := map[string]interface{}{
		"client_id":  ident.UserID.String(),
		"title":      projectReq.Title,
		"status":     "open",
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}
	if projectReq.Description != nil {
		row["description"] = *projectReq.Description
	}
	if len(projectReq.RequiredSkills) > 0 {
		row["required_skills"] = projectReq.RequiredSkills
	}

	body, _, err := h.Gateway.From(projectTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		h.Logger.Errorf("Error creating project: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not create project: %v", err))
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		h.Logger.Errorf("Error unmarshalling project creation response: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not process project creation response")
	}
	if len(results) == 0 {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to create project, no row returned")
	}

	h.Logger.Infof("Project created successfully: %s", results[0].ID)
	return utils.RespondWithJSON(c, fiber.StatusCreated, results[0])
}

// GetProjects retrieves all projects visible to the caller.
func (h *ApplicationHandler) GetProjects(c *fiber.Ctx) error {
	body, _, err := h.Gateway.From(projectTable).
		Select("*", "", false).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching projects: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve projects: %v", err))
	}

	var projects []models.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		h.Logger.Errorf("Error unmarshalling projects data: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not process projects data")
	}
	if projects == nil {
		projects = []models.Project{}
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, projects)
}

// GetProject retrieves a specific project by its ID.
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	projectIDStr := c.Params("id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	var projects []models.Project
	body, _, err := h.Gateway.From(projectTable).
		Select("*", "", false).
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error fetching project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not retrieve project: %v", err))
	}
	if err := json.Unmarshal(body, &projects); err != nil {
		h.Logger.Errorf("Error unmarshalling project data for ID %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not process project data")
	}
	if len(projects) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", projectID))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, projects[0])
}

// UpdateProject partially updates an existing project by its ID.
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	projectIDStr := c.Params("id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	ident := h.identity(c)
	if ident == nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, gateway.ErrNotSignedIn.Error())
	}

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	update := make(map[string]interface{})
	for _, field := range []string{"title", "description", "status", "required_skills"} {
		if val, exists := payload[field]; exists {
			update[field] = val
		}
	}
	update["updated_at"] = time.Now()

	body, _, err := h.Gateway.From(projectTable).
		Update(update, "representation", "").
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error updating project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not update project: %v", err))
	}

	var results []models.Project
	if err := json.Unmarshal(body, &results); err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not process project update response")
	}
	if len(results) == 0 {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project with ID %s not found", projectID))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, results[0])
}

// DeleteProject deletes a specific project by its ID.
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	projectIDStr := c.Params("id")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	ident := h.identity(c)
	if ident == nil {
		return utils.RespondWithError(c, fiber.StatusUnauthorized, gateway.ErrNotSignedIn.Error())
	}

	_, _, err = h.Gateway.From(projectTable).
		Delete("", "").
		Eq("id", projectID.String()).
		Execute()
	if err != nil {
		h.Logger.Errorf("Error deleting project %s: %v", projectID, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not delete project: %v", err))
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"deleted": projectID.String()})
}
