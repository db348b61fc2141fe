// Package model provides data transfer objects and domain models for the prediction module.
package model

// UpdatePredictionRequest sets the goals of the caller's prediction for a match in a group.
type UpdatePredictionRequest struct {
	GroupID      int64  `json:"group_id"      binding:"required"`
	MatchID      int64  `json:"match_id"      binding:"required"`
	UserID       string `json:"user_id"       binding:"required"`
	GoalsLocal   *int   `json:"goals_local"   binding:"required"`
	GoalsVisitor *int   `json:"goals_visitor" binding:"required"`
}

// SyncGroupRequest asks for the group's missing predictions to be created.
type SyncGroupRequest struct {
	GroupID int64 `json:"group_id" binding:"required"`
}

// PredictionResponse is a prediction as seen by a given viewer.
// Goals are withheld (Hidden) while the match is not yet watchable and the viewer is not the owner.
type PredictionResponse struct {
	ID           int64  `json:"id"`
	GroupID      int64  `json:"group_id"`
	MatchID      int64  `json:"match_id"`
	TournamentID int64  `json:"tournament_id"`
	UserID       string `json:"user_id"`
	GoalsLocal   *int   `json:"goals_local"`
	GoalsVisitor *int   `json:"goals_visitor"`
	Points       *int   `json:"points"`
	Hidden       bool   `json:"hidden"`
	Editable     bool   `json:"editable"`
}

// MatchPredictionsResponse lists every prediction of a group for one match.
type MatchPredictionsResponse struct {
	GroupID     int64                `json:"group_id"`
	MatchID     int64                `json:"match_id"`
	Visible     bool                 `json:"visible"`
	Predictions []PredictionResponse `json:"predictions"`
}

// SyncGroupResponse reports a synchronization request.
type SyncGroupResponse struct {
	GroupID int64  `json:"group_id"`
	Status  string `json:"status"`
}
