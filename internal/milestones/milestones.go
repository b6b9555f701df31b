package milestones

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"teambridge/api-gateway/internal/gateway"
	"teambridge/api-gateway/models"
)

// transitions lists the allowed forward moves for the direct status path.
// paid is deliberately absent: it is reachable only through the payment flow.
var transitions = map[string]string{
	models.MilestoneStatusPending:    models.MilestoneStatusInProgress,
	models.MilestoneStatusInProgress: models.MilestoneStatusCompleted,
}

// CanTransition reports whether a direct status edit from one status to
// another is allowed. The status enum only ever moves forward.
func CanTransition(from, to string) bool {
	return transitions[from] == to
}

// Store is the milestone persistence the service writes to. The gateway
// provides the real implementation; tests substitute fakes. Fetch returns
// backend errors raw, including the no-rows signal; classification happens
// here.
type Store interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Milestone, error)
	Insert(ctx context.Context, milestone models.Milestone) (models.Milestone, error)
	Fetch(ctx context.Context, projectID, milestoneID uuid.UUID) (*models.Milestone, error)
	SetStatus(ctx context.Context, projectID, milestoneID uuid.UUID, status string) (models.Milestone, error)
}

// Service implements milestone reads and the user-driven status transitions.
type Service struct {
	store Store
	log   *logrus.Logger
}

// NewService builds a milestone service over the given store.
func NewService(store Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

// ListByProject returns the project's milestones ordered by due date.
func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Milestone, error) {
	results, err := s.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	if results == nil {
		results = []models.Milestone{}
	}
	return results, nil
}

// Create inserts a new milestone in pending status. Requires a signed-in
// identity; the creator is stamped from it.
func (s *Service) Create(ctx context.Context, ident *gateway.Identity, milestone models.Milestone) (models.Milestone, error) {
	if ident == nil {
		return models.Milestone{}, gateway.ErrNotSignedIn
	}

	milestone.Status = models.MilestoneStatusPending
	milestone.CreatedBy = ident.UserID
	return s.store.Insert(ctx, milestone)
}

// UpdateStatus applies a user-driven status transition. The move must be a
// legal forward step; requests for paid are rejected here regardless of the
// current status.
func (s *Service) UpdateStatus(ctx context.Context, ident *gateway.Identity, projectID, milestoneID uuid.UUID, status string) (models.Milestone, error) {
	if ident == nil {
		return models.Milestone{}, gateway.ErrNotSignedIn
	}
	if status == models.MilestoneStatusPaid {
		return models.Milestone{}, fmt.Errorf("milestone status %q is set by the payment flow, not directly", status)
	}

	current, err := s.get(ctx, projectID, milestoneID)
	if err != nil {
		return models.Milestone{}, err
	}
	if !CanTransition(current.Status, status) {
		return models.Milestone{}, fmt.Errorf("illegal milestone transition %s -> %s", current.Status, status)
	}

	updated, err := s.store.SetStatus(ctx, projectID, milestoneID, status)
	if err != nil {
		return models.Milestone{}, err
	}

	s.log.WithFields(logrus.Fields{
		"milestone_id": milestoneID.String(),
		"from":         current.Status,
		"to":           status,
	}).Info("Milestone status updated")
	return updated, nil
}

func (s *Service) get(ctx context.Context, projectID, milestoneID uuid.UUID) (*models.Milestone, error) {
	row, err := s.store.Fetch(ctx, projectID, milestoneID)
	if err != nil {
		if gateway.IsNoRows(err) {
			return nil, gateway.ErrNotFound
		}
		return nil, fmt.Errorf("fetching milestone: %w", err)
	}
	return row, nil
}
