package progress

import (
	"time"

	"teambridge/api-gateway/models"
)

// Summary is the derived payment and completion state of a project's
// milestones. All values are computed from already-fetched rows; nothing here
// touches the backend.
//
// Conventions fixed by this package: CompletedAmount counts milestones in
// completed or paid status. CompletionPercent is CompletedAmount over the
// total amount of all milestones (100 completed out of 150 total reads as
// 66.7%, not 100%). Remaining is the completed-but-unpaid amount,
// CompletedAmount minus TotalPaid.
type Summary struct {
	TotalAmount       float64
	CompletedAmount   float64
	TotalPaid         float64
	Remaining         float64
	CompletionPercent float64
}

// Summarize derives the payment summary for one project's milestones and
// payment attempts. Only payments with completed status count toward
// TotalPaid.
func Summarize(milestones []models.Milestone, payments []models.Payment) Summary {
	var s Summary
	for _, m := range milestones {
		s.TotalAmount += m.Amount
		if m.Status == models.MilestoneStatusCompleted || m.Status == models.MilestoneStatusPaid {
			s.CompletedAmount += m.Amount
		}
	}
	for _, p := range payments {
		if p.Status == models.PaymentStatusCompleted {
			s.TotalPaid += p.Amount
		}
	}
	s.Remaining = s.CompletedAmount - s.TotalPaid
	if s.TotalAmount > 0 {
		s.CompletionPercent = s.CompletedAmount / s.TotalAmount * 100
	}
	return s
}

// Timeline returns how far along a project is between start and end at the
// given instant, as a fraction clamped to [0, 1]. A degenerate window (end
// not after start) reads as fully elapsed once start has passed.
func Timeline(start, end, now time.Time) float64 {
	if !now.After(start) {
		return 0
	}
	if !end.After(start) || !now.Before(end) {
		return 1
	}
	return float64(now.Sub(start)) / float64(end.Sub(start))
}

// ProjectTimeline derives the schedule fraction for a project at the given
// instant. The window runs from the project's creation time to its latest
// milestone due date; a project with no due-dated milestones has no schedule
// and reads as 0.
func ProjectTimeline(createdAt time.Time, milestones []models.Milestone, now time.Time) float64 {
	var end time.Time
	for _, m := range milestones {
		if m.DueDate != nil && m.DueDate.After(end) {
			end = *m.DueDate
		}
	}
	if end.IsZero() {
		return 0
	}
	return Timeline(createdAt, end, now)
}
