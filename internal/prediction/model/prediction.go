package model

import (
	"time"

	"gorm.io/gorm"

	tournamentModel "github.com/festy23/prode/internal/tournament/model"
)

// Prediction is one user's forecast for one match inside a group.
// At most one row exists per (group, match, user).
type Prediction struct {
	ID           int64     `gorm:"primaryKey;column:id"                                                                  json:"id"`
	GroupID      int64     `gorm:"column:group_id;not null;uniqueIndex:uq_predictions_group_match_user"                 json:"group_id"`
	MatchID      int64     `gorm:"column:match_id;not null;uniqueIndex:uq_predictions_group_match_user;index:idx_predictions_match" json:"match_id"`
	TournamentID int64     `gorm:"column:tournament_id;not null"                                                         json:"tournament_id"`
	UserID       string    `gorm:"column:user_id;type:varchar(255);not null;uniqueIndex:uq_predictions_group_match_user" json:"user_id"`
	GoalsLocal   *int      `gorm:"column:goals_local"                                                                    json:"goals_local"`
	GoalsVisitor *int      `gorm:"column:goals_visitor"                                                                  json:"goals_visitor"`
	Points       *int      `gorm:"column:points"                                                                         json:"points"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"                                                            json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"                                                            json:"-"`

	Match *tournamentModel.Match `gorm:"foreignKey:MatchID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Prediction) TableName() string {
	return "predictions"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (p *Prediction) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

// Key identifies a prediction slot.
type Key struct {
	GroupID int64
	MatchID int64
	UserID  string
}

// Key returns the (group, match, user) slot of the prediction.
func (p *Prediction) Key() Key {
	return Key{GroupID: p.GroupID, MatchID: p.MatchID, UserID: p.UserID}
}

// IsSubmitted reports whether both goals have been predicted.
func (p *Prediction) IsSubmitted() bool {
	return p.GoalsLocal != nil && p.GoalsVisitor != nil
}
