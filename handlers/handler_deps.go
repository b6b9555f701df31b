package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/admin"
	"teambridge/api-gateway/internal/dashboard"
	"teambridge/api-gateway/internal/files"
	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/internal/matching"
	"teambridge/api-gateway/internal/milestones"
	"teambridge/api-gateway/internal/payments"
)

// ApplicationHandler holds shared dependencies for handlers. Every access
// module is injected at startup; handlers keep no globals.
type ApplicationHandler struct {
	Logger     *logrus.Logger
	Gateway    *gateway.Gateway
	Files      *files.Service
	Payments   *payments.Service
	Matching   *matching.Service
	Dashboard  *dashboard.Service
	Admin      *admin.Service
	Milestones *milestones.Service
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(log *logrus.Logger, gw *gateway.Gateway) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:     log,
		Gateway:    gw,
		Files:      files.NewSupabaseService(gw, log),
		Payments:   payments.NewSupabaseService(gw, log),
		Matching:   matching.NewService(gw, log),
		Dashboard:  dashboard.NewSupabaseService(gw, log),
		Admin:      admin.NewService(gw, log),
		Milestones: milestones.NewSupabaseService(gw, log),
	}
}

// identity resolves the session identity from the request's bearer token.
// Returns nil when no valid session is present; mutation accessors turn that
// into ErrNotSignedIn before touching the backend.
func (h *ApplicationHandler) identity(c *fiber.Ctx) *gateway.Identity {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	ident, err := h.Gateway.UserFromToken(c.Context(), strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil
	}
	return ident
}

// statusForError maps access-layer sentinels to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, gateway.ErrNotSignedIn):
		return fiber.StatusUnauthorized
	case errors.Is(err, gateway.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, gateway.ErrObjectExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
