package dashboard

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

type fakeReader struct {
	dashboard    *models.ProjectDashboard
	dashboardErr error
	members      []models.TeamMember
	membersErr   error
}

func (f *fakeReader) ProjectDashboard(ctx context.Context, projectID uuid.UUID) (*models.ProjectDashboard, error) {
	if f.dashboardErr != nil {
		return nil, f.dashboardErr
	}
	return f.dashboard, nil
}

func (f *fakeReader) TeamMembers(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.members, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchProjectDashboardPassesRowThrough(t *testing.T) {
	board := &models.ProjectDashboard{ID: uuid.New(), Title: "Marketplace relaunch"}
	svc := NewService(&fakeReader{dashboard: board}, testLogger())

	got, err := svc.FetchProjectDashboard(context.Background(), board.ID)
	require.NoError(t, err)
	assert.Equal(t, board, got)
}

func TestFetchProjectDashboardMissingRowIsNotFound(t *testing.T) {
	noRows := errors.New(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`)
	svc := NewService(&fakeReader{dashboardErr: noRows}, testLogger())

	_, err := svc.FetchProjectDashboard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestFetchProjectDashboardTransientErrorIsNotNotFound(t *testing.T) {
	backendDown := errors.New("connection refused")
	svc := NewService(&fakeReader{dashboardErr: backendDown}, testLogger())

	_, err := svc.FetchProjectDashboard(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, gateway.ErrNotFound)
	assert.ErrorIs(t, err, backendDown)
}

func TestFetchTeamMembersEmptyRosterIsNotError(t *testing.T) {
	svc := NewService(&fakeReader{}, testLogger())

	members, err := svc.FetchTeamMembers(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestFetchTeamMembersErrorPropagates(t *testing.T) {
	backendDown := errors.New("connection refused")
	svc := NewService(&fakeReader{membersErr: backendDown}, testLogger())

	_, err := svc.FetchTeamMembers(context.Background(), uuid.New())
	assert.ErrorIs(t, err, backendDown)
}
