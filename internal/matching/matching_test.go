package matching

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

type fakeInvoker struct {
	names []string
	resp  interface{}
	err   error
}

func (f *fakeInvoker) InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error {
	f.names = append(f.names, name)
	if f.err != nil {
		return f.err
	}
	if f.resp != nil && out != nil {
		raw, _ := json.Marshal(f.resp)
		return json.Unmarshal(raw, out)
	}
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestMatchTeamsPassesRankingThrough(t *testing.T) {
	score1, score2 := 0.92, 0.41
	invoker := &fakeInvoker{resp: models.MatchResponse{Teams: []models.TeamMatch{
		{Team: models.Team{ID: uuid.New(), Name: "Orion"}, MatchScore: &score1},
		{Team: models.Team{ID: uuid.New(), Name: "Vega"}, MatchScore: &score2},
	}}}
	svc := NewService(invoker, testLogger())

	teams, err := svc.MatchTeams(context.Background(), nil, MatchRequest{ProjectID: uuid.New()})
	require.NoError(t, err)

	// Order comes back exactly as the function produced it; no re-ranking.
	require.Len(t, teams, 2)
	assert.Equal(t, "Orion", teams[0].Name)
	assert.Equal(t, "Vega", teams[1].Name)
	assert.Equal(t, []string{"match-teams"}, invoker.names)
}

func TestMatchTeamsEmptyResultIsNotAnError(t *testing.T) {
	invoker := &fakeInvoker{resp: models.MatchResponse{}}
	svc := NewService(invoker, testLogger())

	teams, err := svc.MatchTeams(context.Background(), nil, MatchRequest{ProjectID: uuid.New()})
	require.NoError(t, err)
	assert.NotNil(t, teams)
	assert.Empty(t, teams)
}

func TestSelectTeamRequiresIdentity(t *testing.T) {
	invoker := &fakeInvoker{}
	svc := NewService(invoker, testLogger())

	_, err := svc.SelectTeam(context.Background(), nil, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gateway.ErrNotSignedIn)
	assert.Empty(t, invoker.names)
}

func TestSelectTeamInvokesFunction(t *testing.T) {
	invoker := &fakeInvoker{resp: models.SelectionResponse{Selection: map[string]interface{}{"status": "matched"}}}
	svc := NewService(invoker, testLogger())
	ident := &gateway.Identity{UserID: uuid.New(), AccessToken: "token"}

	selection, err := svc.SelectTeam(context.Background(), ident, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "matched", selection.Selection["status"])
	assert.Equal(t, []string{"select-team"}, invoker.names)
}

func TestSendProjectInterestRequiresIdentity(t *testing.T) {
	svc := NewService(&fakeInvoker{}, testLogger())
	err := svc.SendProjectInterest(context.Background(), nil, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gateway.ErrNotSignedIn)
}
