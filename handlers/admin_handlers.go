package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teambridge/api-gateway/utils"
)

// ListAdmins returns the current admin users. An empty roster is a normal
// success, not an error.
func (h *ApplicationHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.Admin.List(c.Context(), h.identity(c))
	if err != nil {
		h.Logger.Errorf("Error listing admin users: %v", err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not list admin users: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, admins)
}

// AddAdminRequest defines the expected JSON structure for granting admin
// privileges.
type AddAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AddAdmin grants admin privileges to the user behind the given email. The
// authorization decision is made server-side by the admin function.
func (h *ApplicationHandler) AddAdmin(c *fiber.Ctx) error {
	payload := new(AddAdminRequest)
	if err := c.BodyParser(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := validate.Struct(payload); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	if err := h.Admin.Add(c.Context(), h.identity(c), payload.Email); err != nil {
		h.Logger.Errorf("Error adding admin %s: %v", payload.Email, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not add admin user: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusCreated, fiber.Map{"email": payload.Email})
}

// RemoveAdmin revokes admin privileges from a user.
func (h *ApplicationHandler) RemoveAdmin(c *fiber.Ctx) error {
	userIDStr := c.Params("userId")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}

	if err := h.Admin.Remove(c.Context(), h.identity(c), userID); err != nil {
		h.Logger.Errorf("Error removing admin %s: %v", userID, err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not remove admin user: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"removed": userID.String()})
}

// CheckAdmin reports whether the session user is an admin, for gating what
// the caller renders. Evaluated once per session load by convention.
func (h *ApplicationHandler) CheckAdmin(c *fiber.Ctx) error {
	isAdmin, row, err := h.Admin.IsAdmin(c.Context(), h.identity(c))
	if err != nil {
		h.Logger.Errorf("Error checking admin status: %v", err)
		return utils.RespondWithError(c, statusForError(err), fmt.Sprintf("Could not check admin status: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"is_admin": isAdmin,
		"admin":    row,
	})
}
