package admin

import (
	"context"
	"encoding/json"
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

type fakeInvoker struct {
	functionBodies []map[string]interface{}
	functionResp   interface{}
	functionErr    error
	rpcResp        interface{}
	rpcErr         error
}

func (f *fakeInvoker) InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error {
	if m, ok := body.(map[string]interface{}); ok {
		f.functionBodies = append(f.functionBodies, m)
	}
	if f.functionErr != nil {
		return f.functionErr
	}
	if f.functionResp != nil && out != nil {
		raw, _ := json.Marshal(f.functionResp)
		return json.Unmarshal(raw, out)
	}
	return nil
}

func (f *fakeInvoker) Rpc(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error {
	if f.rpcErr != nil {
		return f.rpcErr
	}
	if f.rpcResp != nil && out != nil {
		raw, _ := json.Marshal(f.rpcResp)
		return json.Unmarshal(raw, out)
	}
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testIdentity() *gateway.Identity {
	return &gateway.Identity{UserID: uuid.New(), Email: "admin@example.com", AccessToken: "token"}
}

func TestListEmptyRosterIsNotAnError(t *testing.T) {
	invoker := &fakeInvoker{functionResp: models.AdminListResponse{Admins: []models.AdminUser{}}}
	svc := NewService(invoker, testLogger())

	admins, err := svc.List(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.NotNil(t, admins)
	assert.Empty(t, admins)
}

func TestListRequiresIdentity(t *testing.T) {
	svc := NewService(&fakeInvoker{}, testLogger())
	_, err := svc.List(context.Background(), nil)
	assert.ErrorIs(t, err, gateway.ErrNotSignedIn)
}

func TestActionsCarryDiscriminator(t *testing.T) {
	invoker := &fakeInvoker{}
	svc := NewService(invoker, testLogger())
	ident := testIdentity()
	userID := uuid.New()

	require.NoError(t, svc.Add(context.Background(), ident, "new@example.com"))
	require.NoError(t, svc.Remove(context.Background(), ident, userID))

	require.Len(t, invoker.functionBodies, 2)
	assert.Equal(t, "add", invoker.functionBodies[0]["action"])
	assert.Equal(t, "new@example.com", invoker.functionBodies[0]["email"])
	assert.Equal(t, "remove", invoker.functionBodies[1]["action"])
	assert.Equal(t, userID.String(), invoker.functionBodies[1]["userId"])
}

func TestIsAdminFalseSkipsFollowUp(t *testing.T) {
	invoker := &fakeInvoker{rpcResp: false}
	svc := NewService(invoker, testLogger())

	isAdmin, row, err := svc.IsAdmin(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.False(t, isAdmin)
	assert.Nil(t, row)
	assert.Empty(t, invoker.functionBodies)
}

func TestIsAdminTrueFetchesRow(t *testing.T) {
	ident := testIdentity()
	invoker := &fakeInvoker{
		rpcResp: true,
		functionResp: models.AdminListResponse{Admins: []models.AdminUser{
			{ID: uuid.New(), UserID: ident.UserID, Email: ident.Email, Role: "admin"},
		}},
	}
	svc := NewService(invoker, testLogger())

	isAdmin, row, err := svc.IsAdmin(context.Background(), ident)
	require.NoError(t, err)
	assert.True(t, isAdmin)
	require.NotNil(t, row)
	assert.Equal(t, ident.UserID, row.UserID)
}

func TestIsAdminTrueSurvivesRowFetchFailure(t *testing.T) {
	invoker := &fakeInvoker{rpcResp: true, functionErr: errors.New("function unavailable")}
	svc := NewService(invoker, testLogger())

	isAdmin, row, err := svc.IsAdmin(context.Background(), testIdentity())
	require.NoError(t, err)
	assert.True(t, isAdmin)
	assert.Nil(t, row)
}
