package model

import "time"

// RegisterUserRequest creates a user or refreshes its profile.
type RegisterUserRequest struct {
	UserID   string  `json:"user_id"  binding:"required"`
	Username string  `json:"username" binding:"required"`
	Email    *string `json:"email"    binding:"omitempty,email"`
}

// SetIsActiveRequest represents the request to update user activity status.
type SetIsActiveRequest struct {
	UserID   string `json:"user_id"   binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// UserResponse wraps a user in API responses.
type UserResponse struct {
	User User `json:"user"`
}

// UserPrediction is one of the user's predictions, with its group and match.
type UserPrediction struct {
	PredictionID int64     `json:"prediction_id"`
	GroupID      int64     `json:"group_id"`
	GroupName    string    `json:"group_name"`
	MatchID      int64     `json:"match_id"`
	TournamentID int64     `json:"tournament_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	GoalsLocal   *int      `json:"goals_local"`
	GoalsVisitor *int      `json:"goals_visitor"`
	Points       *int      `json:"points"`
}

// GetPredictionsResponse lists a user's predictions across groups.
type GetPredictionsResponse struct {
	UserID      string           `json:"user_id"`
	TotalPoints int              `json:"total_points"`
	Predictions []UserPrediction `json:"predictions"`
}
