package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

const (
	paymentTable   = "payments"
	milestoneTable = "milestones"
)

// NewSupabaseService wires a Service to the gateway-backed ledger and the
// edge-function invoker.
func NewSupabaseService(gw *gateway.Gateway, log *logrus.Logger) *Service {
	return NewService(gw, supabaseLedger{gw: gw}, log)
}

type supabaseLedger struct {
	gw *gateway.Gateway
}

func (l supabaseLedger) InsertPayment(ctx context.Context, payment models.Payment) (models.Payment, error) {
	// Insert via a map so the database generates the row id.
	row := map[string]interface{}{
		"project_id": payment.ProjectID.String(),
		"amount":     payment.Amount,
		"currency":   payment.Currency,
		"status":     payment.Status,
		"created_by": payment.CreatedBy.String(),
		"created_at": payment.CreatedAt,
	}
	if payment.MilestoneID != nil {
		row["milestone_id"] = payment.MilestoneID.String()
	}
	if payment.PaymentMethod != nil {
		row["payment_method"] = *payment.PaymentMethod
	}

	body, _, err := l.gw.From(paymentTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.Payment{}, fmt.Errorf("inserting payment: %w", err)
	}

	var results []models.Payment
	if err := json.Unmarshal(body, &results); err != nil {
		return models.Payment{}, fmt.Errorf("decoding payment insert response: %w", err)
	}
	if len(results) == 0 {
		return models.Payment{}, fmt.Errorf("no row returned after payment insert")
	}
	return results[0], nil
}

func (l supabaseLedger) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Payment, error) {
	body, _, err := l.gw.From(paymentTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	var results []models.Payment
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decoding payments: %w", err)
	}
	if results == nil {
		results = []models.Payment{}
	}
	return results, nil
}

func (l supabaseLedger) MarkMilestonePaid(ctx context.Context, milestoneID uuid.UUID) error {
	update := map[string]interface{}{
		"status":     models.MilestoneStatusPaid,
		"updated_at": time.Now(),
	}
	_, _, err := l.gw.From(milestoneTable).
		Update(update, "", "").
		Eq("id", milestoneID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("marking milestone %s paid: %w", milestoneID, err)
	}
	return nil
}
