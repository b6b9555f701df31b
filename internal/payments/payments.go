package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

// DefaultCurrency is stamped on payment rows and intents when the caller
// leaves the currency unspecified.
const DefaultCurrency = "USD"

// Invoker is the slice of the gateway used to reach the payment edge
// functions.
type Invoker interface {
	InvokeFunction(ctx context.Context, name string, accessToken string, body interface{}, out interface{}) error
}

// Ledger is the payment and milestone persistence the service writes to.
type Ledger interface {
	InsertPayment(ctx context.Context, payment models.Payment) (models.Payment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Payment, error)
	MarkMilestonePaid(ctx context.Context, milestoneID uuid.UUID) error
}

// Service implements payment recording and the intent/confirm flow against
// the external processor. The flow's three network legs (create intent,
// confirm, settle milestone) run sequentially and are not wrapped in a single
// atomic operation: a failure between legs leaves the system in an
// intermediate, inspectable state rather than rolling back.
type Service struct {
	invoker Invoker
	ledger  Ledger
	log     *logrus.Logger
}

// NewService builds a payment service over the given invoker and ledger.
func NewService(invoker Invoker, ledger Ledger, log *logrus.Logger) *Service {
	return &Service{invoker: invoker, ledger: ledger, log: log}
}

// IntentRequest is the body sent to the create-payment-intent function.
// Amount is already in minor currency units; this layer never rescales.
type IntentRequest struct {
	Amount      int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	ProjectID   uuid.UUID              `json:"projectId"`
	MilestoneID *uuid.UUID             `json:"milestoneId,omitempty"`
	TeamID      *uuid.UUID             `json:"teamId,omitempty"`
	ClientID    *uuid.UUID             `json:"clientId,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Record stamps and persists a payment row. Requires a signed-in identity;
// the acting user id, a default currency and a creation timestamp are filled
// in before the insert. Backend errors propagate to the caller.
func (s *Service) Record(ctx context.Context, ident *gateway.Identity, payment models.Payment) (models.Payment, error) {
	if ident == nil {
		return models.Payment{}, gateway.ErrNotSignedIn
	}

	payment.CreatedBy = ident.UserID
	if payment.Currency == "" {
		payment.Currency = DefaultCurrency
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	payment.CreatedAt = time.Now().UTC()

	return s.ledger.InsertPayment(ctx, payment)
}

// List returns the project's payment rows.
func (s *Service) List(ctx context.Context, projectID uuid.UUID) ([]models.Payment, error) {
	return s.ledger.ListByProject(ctx, projectID)
}

// CreateIntent asks the processor for a payment intent via the
// create-payment-intent function. Requires a signed-in identity; the caller's
// id rides along as the client id unless the request already names one.
func (s *Service) CreateIntent(ctx context.Context, ident *gateway.Identity, req IntentRequest) (*models.PaymentIntent, error) {
	if ident == nil {
		return nil, gateway.ErrNotSignedIn
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}
	if req.ClientID == nil {
		clientID := ident.UserID
		req.ClientID = &clientID
	}

	var intent models.PaymentIntent
	if err := s.invoker.InvokeFunction(ctx, "create-payment-intent", ident.AccessToken, req, &intent); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"project_id":        req.ProjectID.String(),
		"payment_intent_id": intent.PaymentIntentID,
		"amount":            req.Amount,
		"currency":          req.Currency,
	}).Info("Payment intent created")
	return &intent, nil
}

// Confirm finalizes a charge with the backend and then flips the associated
// milestone to paid. The two legs are sequential: if the confirm succeeds but
// the milestone update fails, the charge stands and the error reports the
// settle failure so the caller can re-trigger it.
func (s *Service) Confirm(ctx context.Context, ident *gateway.Identity, paymentIntentID string, projectID, milestoneID uuid.UUID) error {
	if ident == nil {
		return gateway.ErrNotSignedIn
	}

	body := map[string]interface{}{
		"paymentIntentId": paymentIntentID,
		"projectId":       projectID.String(),
		"milestoneId":     milestoneID.String(),
	}
	if err := s.invoker.InvokeFunction(ctx, "confirm-payment", ident.AccessToken, body, nil); err != nil {
		return err
	}

	if err := s.ledger.MarkMilestonePaid(ctx, milestoneID); err != nil {
		s.log.WithFields(logrus.Fields{
			"payment_intent_id": paymentIntentID,
			"milestone_id":      milestoneID.String(),
			"error":             err.Error(),
		}).Error("Payment confirmed but milestone not settled")
		return err
	}
	return nil
}
