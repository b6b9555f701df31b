package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/utils"
)

// UploadProjectFile handles multipart file uploads for a project. The binary
// goes to storage first, then the metadata row; a failed metadata insert
// rolls the uploaded object back inside the file service.
func (h *ApplicationHandler) UploadProjectFile(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.Logger.Errorf("Invalid project ID format '%s': %v", projectIDStr, err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Logger.Errorf("Error getting file from request: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Error getting file: %v", err))
	}

	fileHandle, err := fileHeader.Open()
	if err != nil {
		h.Logger.Errorf("Error opening uploaded file: %v", err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Error opening file: %v", err))
	}
	defer fileHandle.Close()

	ident := h.identity(c)
	created, err := h.Files.Upload(c.Context(), ident, projectID, fileHeader.Filename, fileHeader.Size, fileHandle)
	if err != nil {
		h.Logger.Errorf("Error uploading file %s for project %s: %v", fileHeader.Filename, projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not upload file: %v", err))
	}

	h.Logger.Infof("Successfully uploaded file %s for project %s", fileHeader.Filename, projectID)
	return utils.RespondWithJSON(c, fiber.StatusCreated, created)
}

// ListProjectFiles returns a project's file attachments, newest first.
func (h *ApplicationHandler) ListProjectFiles(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	listed, err := h.Files.List(c.Context(), projectID)
	if err != nil {
		h.Logger.Errorf("Error listing files for project %s: %v", projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not retrieve files: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, listed)
}

// DeleteProjectFile removes a file's storage object and, only if that
// succeeds, its metadata row. The storage key rides in the query string so
// the delete targets exactly the object the row was catalogued under.
func (h *ApplicationHandler) DeleteProjectFile(c *fiber.Ctx) error {
	projectIDStr := c.Params("projectId")
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}

	fileIDStr := c.Params("fileId")
	fileID, err := uuid.Parse(fileIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid file ID format")
	}

	key := c.Query("key")
	if key == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Missing storage key")
	}

	ident := h.identity(c)
	if err := h.Files.Delete(c.Context(), ident, projectID, fileID, key); err != nil {
		h.Logger.Errorf("Error deleting file %s for project %s: %v", fileID, projectID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not delete file: %v", err))
	}

	h.Logger.Infof("Successfully deleted file %s for project %s", fileID, projectID)
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"deleted": fileID.String()})
}
