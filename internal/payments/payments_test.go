package payments

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

type invocation struct {
	name  string
	token string
	body  interface{}
}

type fakeInvoker struct {
	calls     []invocation
	responses map[string]interface{}
	errs      map[string]error
}

func (f *fakeInvoker) InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error {
	f.calls = append(f.calls, invocation{name: name, token: accessToken, body: body})
	if err := f.errs[name]; err != nil {
		return err
	}
	if resp, ok := f.responses[name]; ok && out != nil {
		raw, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}
	return nil
}

type fakeLedger struct {
	inserted  []models.Payment
	insertErr error
	markErr   error
	paid      []uuid.UUID
}

func (f *fakeLedger) InsertPayment(ctx context.Context, payment models.Payment) (models.Payment, error) {
	if f.insertErr != nil {
		return models.Payment{}, f.insertErr
	}
	payment.ID = uuid.New()
	f.inserted = append(f.inserted, payment)
	return payment, nil
}

func (f *fakeLedger) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.inserted {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	if out == nil {
		out = []models.Payment{}
	}
	return out, nil
}

func (f *fakeLedger) MarkMilestonePaid(ctx context.Context, milestoneID uuid.UUID) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.paid = append(f.paid, milestoneID)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testIdentity() *gateway.Identity {
	return &gateway.Identity{UserID: uuid.New(), Email: "client@example.com", AccessToken: "token"}
}

func TestRecordRequiresIdentity(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(&fakeInvoker{}, ledger, testLogger())

	_, err := svc.Record(context.Background(), nil, models.Payment{ProjectID: uuid.New(), Amount: 100})
	assert.ErrorIs(t, err, gateway.ErrNotSignedIn)
	// Fails fast: no row may be created.
	assert.Empty(t, ledger.inserted)
}

func TestRecordStampsDefaults(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(&fakeInvoker{}, ledger, testLogger())
	ident := testIdentity()

	created, err := svc.Record(context.Background(), ident, models.Payment{ProjectID: uuid.New(), Amount: 250})
	require.NoError(t, err)

	assert.Equal(t, ident.UserID, created.CreatedBy)
	assert.Equal(t, DefaultCurrency, created.Currency)
	assert.Equal(t, models.PaymentStatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestRecordKeepsExplicitCurrencyAndStatus(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(&fakeInvoker{}, ledger, testLogger())

	created, err := svc.Record(context.Background(), testIdentity(), models.Payment{
		ProjectID: uuid.New(),
		Amount:    250,
		Currency:  "EUR",
		Status:    models.PaymentStatusProcessing,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", created.Currency)
	assert.Equal(t, models.PaymentStatusProcessing, created.Status)
}

func TestCreateIntentDoesNotRescaleAmount(t *testing.T) {
	invoker := &fakeInvoker{
		responses: map[string]interface{}{
			"create-payment-intent": map[string]interface{}{
				"paymentIntentId": "pi_123",
				"amount":          10000,
				"currency":        "usd",
			},
		},
	}
	svc := NewService(invoker, &fakeLedger{}, testLogger())

	// 10000 is already minor units; the service must pass it through untouched.
	intent, err := svc.CreateIntent(context.Background(), testIdentity(), IntentRequest{
		Amount:    10000,
		ProjectID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.PaymentIntentID)

	require.Len(t, invoker.calls, 1)
	sent := invoker.calls[0].body.(IntentRequest)
	assert.Equal(t, int64(10000), sent.Amount)
	assert.Equal(t, DefaultCurrency, sent.Currency)
}

func TestCreateIntentStampsClientFromIdentity(t *testing.T) {
	invoker := &fakeInvoker{
		responses: map[string]interface{}{
			"create-payment-intent": map[string]interface{}{"paymentIntentId": "pi_123"},
		},
	}
	svc := NewService(invoker, &fakeLedger{}, testLogger())
	ident := testIdentity()

	_, err := svc.CreateIntent(context.Background(), ident, IntentRequest{Amount: 100, ProjectID: uuid.New()})
	require.NoError(t, err)

	require.Len(t, invoker.calls, 1)
	sent := invoker.calls[0].body.(IntentRequest)
	require.NotNil(t, sent.ClientID)
	assert.Equal(t, ident.UserID, *sent.ClientID)
}

func TestCreateIntentKeepsExplicitClient(t *testing.T) {
	invoker := &fakeInvoker{
		responses: map[string]interface{}{
			"create-payment-intent": map[string]interface{}{"paymentIntentId": "pi_123"},
		},
	}
	svc := NewService(invoker, &fakeLedger{}, testLogger())
	explicit := uuid.New()

	_, err := svc.CreateIntent(context.Background(), testIdentity(), IntentRequest{
		Amount:    100,
		ProjectID: uuid.New(),
		ClientID:  &explicit,
	})
	require.NoError(t, err)

	sent := invoker.calls[0].body.(IntentRequest)
	require.NotNil(t, sent.ClientID)
	assert.Equal(t, explicit, *sent.ClientID)
}

func TestCreateIntentRequiresIdentity(t *testing.T) {
	invoker := &fakeInvoker{}
	svc := NewService(invoker, &fakeLedger{}, testLogger())

	_, err := svc.CreateIntent(context.Background(), nil, IntentRequest{Amount: 100, ProjectID: uuid.New()})
	assert.ErrorIs(t, err, gateway.ErrNotSignedIn)
	assert.Empty(t, invoker.calls)
}

func TestConfirmSettlesMilestone(t *testing.T) {
	invoker := &fakeInvoker{}
	ledger := &fakeLedger{}
	svc := NewService(invoker, ledger, testLogger())
	milestoneID := uuid.New()

	err := svc.Confirm(context.Background(), testIdentity(), "pi_123", uuid.New(), milestoneID)
	require.NoError(t, err)

	require.Len(t, invoker.calls, 1)
	assert.Equal(t, "confirm-payment", invoker.calls[0].name)
	assert.Equal(t, []uuid.UUID{milestoneID}, ledger.paid)
}

func TestConfirmFailureSkipsSettle(t *testing.T) {
	invoker := &fakeInvoker{errs: map[string]error{"confirm-payment": errors.New("declined")}}
	ledger := &fakeLedger{}
	svc := NewService(invoker, ledger, testLogger())

	err := svc.Confirm(context.Background(), testIdentity(), "pi_123", uuid.New(), uuid.New())
	require.Error(t, err)
	// Leg two never runs when leg one fails.
	assert.Empty(t, ledger.paid)
}

func TestConfirmedButUnsettledSurfacesSettleError(t *testing.T) {
	invoker := &fakeInvoker{}
	markErr := errors.New("milestones table unavailable")
	ledger := &fakeLedger{markErr: markErr}
	svc := NewService(invoker, ledger, testLogger())

	err := svc.Confirm(context.Background(), testIdentity(), "pi_123", uuid.New(), uuid.New())
	// The charge stands; the settle failure is reported, not rolled back.
	assert.ErrorIs(t, err, markErr)
	require.Len(t, invoker.calls, 1)
}
