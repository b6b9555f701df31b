package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

// Reader is the slice of the backend the dashboard service reads from. The
// gateway provides the real implementation; tests substitute fakes. Readers
// return backend errors raw, including the no-rows signal; classification
// happens here.
type Reader interface {
	ProjectDashboard(ctx context.Context, projectID uuid.UUID) (*models.ProjectDashboard, error)
	TeamMembers(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error)
}

// Service provides the read-only aggregation queries shared by multiple
// screens. A missing row comes back as gateway.ErrNotFound, which callers can
// tell apart from transient backend errors instead of both collapsing into an
// empty result.
type Service struct {
	reader Reader
	log    *logrus.Logger
}

// NewService builds a dashboard read service over the given reader.
func NewService(reader Reader, log *logrus.Logger) *Service {
	return &Service{reader: reader, log: log}
}

// FetchProjectDashboard returns the aggregated dashboard record for a project
// from the precomputed view.
func (s *Service) FetchProjectDashboard(ctx context.Context, projectID uuid.UUID) (*models.ProjectDashboard, error) {
	row, err := s.reader.ProjectDashboard(ctx, projectID)
	if err != nil {
		if gateway.IsNoRows(err) {
			return nil, gateway.ErrNotFound
		}
		s.log.WithFields(logrus.Fields{
			"project_id": projectID.String(),
			"error":      err.Error(),
		}).Error("Dashboard view query failed")
		return nil, fmt.Errorf("fetching project dashboard: %w", err)
	}
	return row, nil
}

// FetchTeamMembers returns the project's roster from the precomputed view,
// ordered by member display name.
func (s *Service) FetchTeamMembers(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error) {
	rows, err := s.reader.TeamMembers(ctx, projectID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"project_id": projectID.String(),
			"error":      err.Error(),
		}).Error("Team members view query failed")
		return nil, fmt.Errorf("fetching team members: %w", err)
	}
	if rows == nil {
		rows = []models.TeamMember{}
	}
	return rows, nil
}
