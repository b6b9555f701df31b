package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

// Invoker is the slice of the gateway used to reach the matching edge
// functions.
type Invoker interface {
	InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error
}

// Service is a pass-through to the remote matching functions. It applies no
// ranking, filtering or caching of its own; the ranked list comes back
// exactly as the match-teams function produced it.
type Service struct {
	invoker Invoker
	log     *logrus.Logger
}

// NewService builds a matching service over the given invoker.
func NewService(invoker Invoker, log *logrus.Logger) *Service {
	return &Service{invoker: invoker, log: log}
}

// MatchRequest is the body sent to the match-teams function.
type MatchRequest struct {
	ProjectID       uuid.UUID              `json:"project_id"`
	Requirements    []string               `json:"requirements,omitempty"`
	UserPreferences map[string]interface{} `json:"user_preferences,omitempty"`
}

// MatchTeams sends the project context to match-teams and returns the ranked
// candidates, score and reason included.
func (s *Service) MatchTeams(ctx context.Context, ident *gateway.Identity, req MatchRequest) ([]models.TeamMatch, error) {
	var token string
	if ident != nil {
		token = ident.AccessToken
	}

	var resp models.MatchResponse
	if err := s.invoker.InvokeFunction(ctx, "match-teams", token, req, &resp); err != nil {
		return nil, err
	}
	if resp.Teams == nil {
		resp.Teams = []models.TeamMatch{}
	}

	s.log.WithFields(logrus.Fields{
		"project_id": req.ProjectID.String(),
		"candidates": len(resp.Teams),
	}).Info("Team matching completed")
	return resp.Teams, nil
}

// SelectTeam commits a match decision via select-team. Requires a signed-in
// identity; no local state is updated before the call resolves.
func (s *Service) SelectTeam(ctx context.Context, ident *gateway.Identity, projectID, teamID uuid.UUID) (*models.SelectionResponse, error) {
	if ident == nil {
		return nil, gateway.ErrNotSignedIn
	}

	body := map[string]interface{}{
		"project_id": projectID.String(),
		"team_id":    teamID.String(),
	}
	var resp models.SelectionResponse
	if err := s.invoker.InvokeFunction(ctx, "select-team", ident.AccessToken, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendProjectInterest notifies a project's client that a team is interested.
// Requires a signed-in identity.
func (s *Service) SendProjectInterest(ctx context.Context, ident *gateway.Identity, projectID, teamID uuid.UUID) error {
	if ident == nil {
		return gateway.ErrNotSignedIn
	}

	body := map[string]interface{}{
		"projectId": projectID.String(),
		"teamId":    teamID.String(),
	}
	return s.invoker.InvokeFunction(ctx, "send-project-interest", ident.AccessToken, body, nil)
}
