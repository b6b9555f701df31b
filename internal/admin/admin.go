package admin

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

const managementFunction = "admin-user-management"

// Invoker is the slice of the gateway used to reach the admin function and
// the is_admin database function.
type Invoker interface {
	InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error
	Rpc(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error
}

// Service manages privileged users through the admin-user-management
// function. Every call carries an action discriminator; authorization happens
// entirely server-side, the client performs no role check before invoking.
type Service struct {
	invoker Invoker
	log     *logrus.Logger
}

// NewService builds an admin service over the given invoker.
func NewService(invoker Invoker, log *logrus.Logger) *Service {
	return &Service{invoker: invoker, log: log}
}

// List returns the current admin users. An empty list is a normal result,
// not an error.
func (s *Service) List(ctx context.Context, ident *gateway.Identity) ([]models.AdminUser, error) {
	if ident == nil {
		return nil, gateway.ErrNotSignedIn
	}

	var resp models.AdminListResponse
	body := map[string]interface{}{"action": "list"}
	if err := s.invoker.InvokeFunction(ctx, managementFunction, ident.AccessToken, body, &resp); err != nil {
		return nil, err
	}
	if resp.Admins == nil {
		resp.Admins = []models.AdminUser{}
	}
	return resp.Admins, nil
}

// Add grants admin privileges to the user behind the given email.
func (s *Service) Add(ctx context.Context, ident *gateway.Identity, email string) error {
	if ident == nil {
		return gateway.ErrNotSignedIn
	}

	body := map[string]interface{}{
		"action": "add",
		"email":  email,
	}
	if err := s.invoker.InvokeFunction(ctx, managementFunction, ident.AccessToken, body, nil); err != nil {
		return err
	}
	s.log.WithField("email", email).Info("Admin user added")
	return nil
}

// Remove revokes admin privileges from the given user.
func (s *Service) Remove(ctx context.Context, ident *gateway.Identity, userID uuid.UUID) error {
	if ident == nil {
		return gateway.ErrNotSignedIn
	}

	body := map[string]interface{}{
		"action": "remove",
		"userId": userID.String(),
	}
	if err := s.invoker.InvokeFunction(ctx, managementFunction, ident.AccessToken, body, nil); err != nil {
		return err
	}
	s.log.WithField("user_id", userID.String()).Info("Admin user removed")
	return nil
}

// IsAdmin reports whether the session user is an admin, using the is_admin
// database function plus a follow-up read of the admin row. It gates only
// what the caller chooses to render; mutations stay server-side gated. Meant
// to be evaluated once per authenticated session load.
func (s *Service) IsAdmin(ctx context.Context, ident *gateway.Identity) (bool, *models.AdminUser, error) {
	if ident == nil {
		return false, nil, gateway.ErrNotSignedIn
	}

	var isAdmin bool
	if err := s.invoker.Rpc(ctx, "is_admin", ident.AccessToken, nil, &isAdmin); err != nil {
		return false, nil, err
	}
	if !isAdmin {
		return false, nil, nil
	}

	// Follow-up read for the row backing the flag; the boolean alone still
	// answers the question if the row fetch fails.
	admins, err := s.List(ctx, ident)
	if err != nil {
		s.log.WithError(err).Warn("is_admin true but admin row fetch failed")
		return true, nil, nil
	}
	for i := range admins {
		if admins[i].UserID == ident.UserID {
			return true, &admins[i], nil
		}
	}
	return true, nil, nil
}
