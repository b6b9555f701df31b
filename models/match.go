package models

// TeamMatch is a match candidate returned by the match-teams function. The
// score and reason exist only in the matching response; they are never
// persisted against the team's own record.
type TeamMatch struct {
	Team
	MatchScore  *float64 `json:"match_score,omitempty"`
	MatchReason *string  `json:"match_reason,omitempty"`
}

// MatchResponse is the envelope returned by the match-teams function.
type MatchResponse struct {
	Teams []TeamMatch `json:"teams"`
}

// SelectionResponse is the envelope returned by the select-team function.
type SelectionResponse struct {
	Selection map[string]interface{} `json:"selection"`
}
