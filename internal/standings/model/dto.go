// Package model provides data transfer objects for standings module.
package model

// MemberStanding is one member's line in a group table.
type MemberStanding struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Points      int    `json:"points"`
	ExactHits   int    `json:"exact_hits"`
	OutcomeHits int    `json:"outcome_hits"`
	Scored      int    `json:"scored"`
}

// GroupStandingsResponse represents response for group standings.
type GroupStandingsResponse struct {
	GroupID      int64            `json:"group_id"`
	GroupName    string           `json:"group_name"`
	TournamentID int64            `json:"tournament_id"`
	Standings    []MemberStanding `json:"standings"`
}

// PredictionStatistics counts the predictions of a group by state.
type PredictionStatistics struct {
	Total       int `json:"total"`
	Submitted   int `json:"submitted"`
	Scored      int `json:"scored"`
	ExactHits   int `json:"exact_hits"`
	OutcomeHits int `json:"outcome_hits"`
	Misses      int `json:"misses"`
}

// PredictionStatisticsResponse represents response for prediction statistics.
type PredictionStatisticsResponse struct {
	GroupID    int64                `json:"group_id"`
	Statistics PredictionStatistics `json:"statistics"`
}
