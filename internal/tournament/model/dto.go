// Package model provides domain models and DTOs for the tournament module.
package model

import "time"

// MatchInput describes a fixture by team names.
type MatchInput struct {
	LocalTeam    string    `json:"local_team"    binding:"required"`
	VisitorTeam  string    `json:"visitor_team"  binding:"required"`
	ScheduledAt  time.Time `json:"scheduled_at"  binding:"required"`
	DoublePoints bool      `json:"double_points"`
}

// AddTournamentRequest creates a tournament with its teams and an optional first set of matches.
type AddTournamentRequest struct {
	Name    string       `json:"name"    binding:"required"`
	Teams   []string     `json:"teams"   binding:"required,min=2"`
	Matches []MatchInput `json:"matches" binding:"omitempty,dive"`
}

// AddMatchesRequest appends matches to an existing tournament.
type AddMatchesRequest struct {
	TournamentID int64        `json:"tournament_id" binding:"required"`
	Matches      []MatchInput `json:"matches"       binding:"required,min=1,dive"`
}

// RecordResultRequest records the final score of a match.
type RecordResultRequest struct {
	MatchID      int64 `json:"match_id"      binding:"required"`
	GoalsLocal   *int  `json:"goals_local"   binding:"required"`
	GoalsVisitor *int  `json:"goals_visitor" binding:"required"`
}

// ReprocessMatchRequest asks for an already played match to be scored again.
type ReprocessMatchRequest struct {
	MatchID int64 `json:"match_id" binding:"required"`
}

// TeamResponse represents a team in API responses.
type TeamResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MatchResponse represents a match in API responses.
// Outcome is set once the result is recorded.
type MatchResponse struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	LocalTeam    string    `json:"local_team"`
	VisitorTeam  string    `json:"visitor_team"`
	GoalsLocal   *int      `json:"goals_local"`
	GoalsVisitor *int      `json:"goals_visitor"`
	Outcome      string    `json:"outcome,omitempty"`
	DoublePoints bool      `json:"double_points"`
	IsClosed     bool      `json:"is_closed"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}

// TournamentResponse represents a tournament with its teams and matches.
type TournamentResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	IsActive bool            `json:"is_active"`
	Teams    []TeamResponse  `json:"teams"`
	Matches  []MatchResponse `json:"matches"`
}
