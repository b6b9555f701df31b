package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

const (
	dashboardView   = "project_dashboard_view"
	teamMembersView = "project_team_members_view"
)

// NewSupabaseService wires a Service to the gateway-backed views.
func NewSupabaseService(gw *gateway.Gateway, log *logrus.Logger) *Service {
	return NewService(supabaseReader{gw: gw}, log)
}

type supabaseReader struct {
	gw *gateway.Gateway
}

func (r supabaseReader) ProjectDashboard(ctx context.Context, projectID uuid.UUID) (*models.ProjectDashboard, error) {
	var row models.ProjectDashboard
	_, err := r.gw.From(dashboardView).
		Select("*", "", false).
		Eq("id", projectID.String()).
		Single().
		ExecuteTo(&row)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r supabaseReader) TeamMembers(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error) {
	var rows []models.TeamMember
	_, err := r.gw.From(teamMembersView).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Order("full_name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
