package milestones

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

const milestoneTable = "milestones"

// NewSupabaseService wires a Service to the gateway-backed milestone table.
func NewSupabaseService(gw *gateway.Gateway, log *logrus.Logger) *Service {
	return NewService(supabaseStore{gw: gw}, log)
}

type supabaseStore struct {
	gw *gateway.Gateway
}

func (st supabaseStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Milestone, error) {
	body, _, err := st.gw.From(milestoneTable).
		Select("*", "", false).
		Eq("project_id", projectID.String()).
		Order("due_date", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, err
	}

	var results []models.Milestone
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decoding milestones: %w", err)
	}
	return results, nil
}

func (st supabaseStore) Insert(ctx context.Context, milestone models.Milestone) (models.Milestone, error) {
	// Insert via a map so the database generates the row id.
	row := map[string]interface{}{
		"project_id": milestone.ProjectID.String(),
		"title":      milestone.Title,
		"amount":     milestone.Amount,
		"status":     milestone.Status,
		"created_by": milestone.CreatedBy.String(),
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}
	if milestone.Description != nil {
		row["description"] = *milestone.Description
	}
	if milestone.DueDate != nil {
		row["due_date"] = *milestone.DueDate
	}

	body, _, err := st.gw.From(milestoneTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return models.Milestone{}, fmt.Errorf("inserting milestone: %w", err)
	}

	var results []models.Milestone
	if err := json.Unmarshal(body, &results); err != nil {
		return models.Milestone{}, fmt.Errorf("decoding milestone insert response: %w", err)
	}
	if len(results) == 0 {
		return models.Milestone{}, fmt.Errorf("no row returned after milestone insert")
	}
	return results[0], nil
}

func (st supabaseStore) Fetch(ctx context.Context, projectID, milestoneID uuid.UUID) (*models.Milestone, error) {
	var row models.Milestone
	_, err := st.gw.From(milestoneTable).
		Select("*", "", false).
		Eq("id", milestoneID.String()).
		Eq("project_id", projectID.String()).
		Single().
		ExecuteTo(&row)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (st supabaseStore) SetStatus(ctx context.Context, projectID, milestoneID uuid.UUID, status string) (models.Milestone, error) {
	update := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	body, _, err := st.gw.From(milestoneTable).
		Update(update, "representation", "").
		Eq("id", milestoneID.String()).
		Eq("project_id", projectID.String()).
		Execute()
	if err != nil {
		return models.Milestone{}, fmt.Errorf("updating milestone status: %w", err)
	}

	var results []models.Milestone
	if err := json.Unmarshal(body, &results); err != nil {
		return models.Milestone{}, fmt.Errorf("decoding milestone update response: %w", err)
	}
	if len(results) == 0 {
		return models.Milestone{}, gateway.ErrNotFound
	}
	return results[0], nil
}
