package model

import (
	"time"

	"gorm.io/gorm"
)

// Tournament represents a competition that groups follow.
type Tournament struct {
	ID        int64     `gorm:"primaryKey;column:id"                                json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex" json:"name"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"              json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                          json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                          json:"-"`

	Teams   []Team  `gorm:"foreignKey:TournamentID" json:"teams,omitempty"`
	Matches []Match `gorm:"foreignKey:TournamentID" json:"matches,omitempty"`
}

// TableName specifies the table name for GORM.
func (Tournament) TableName() string {
	return "tournaments"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Tournament) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// Team represents a team playing in a tournament.
type Team struct {
	ID           int64  `gorm:"primaryKey;column:id"                                                  json:"id"`
	TournamentID int64  `gorm:"column:tournament_id;not null;uniqueIndex:uq_teams_tournament_name"   json:"tournament_id"`
	Name         string `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_teams_tournament_name" json:"name"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// Match is a fixture between a local and a visitor team.
// Goals stay nil until the match is played.
type Match struct {
	ID            int64     `gorm:"primaryKey;column:id"                                      json:"id"`
	TournamentID  int64     `gorm:"column:tournament_id;not null;index:idx_matches_tournament" json:"tournament_id"`
	LocalTeamID   int64     `gorm:"column:local_team_id;not null"                              json:"local_team_id"`
	VisitorTeamID int64     `gorm:"column:visitor_team_id;not null"                            json:"visitor_team_id"`
	GoalsLocal    *int      `gorm:"column:goals_local"                                         json:"goals_local"`
	GoalsVisitor  *int      `gorm:"column:goals_visitor"                                       json:"goals_visitor"`
	DoublePoints  bool      `gorm:"column:double_points;not null;default:false"                json:"double_points"`
	IsClosed      bool      `gorm:"column:is_closed;not null;default:false"                    json:"is_closed"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"                     json:"is_active"`
	ScheduledAt   time.Time `gorm:"column:scheduled_at;not null"                               json:"scheduled_at"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"                                 json:"-"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null"                                 json:"-"`

	LocalTeam   *Team `gorm:"foreignKey:LocalTeamID"   json:"local_team,omitempty"`
	VisitorTeam *Team `gorm:"foreignKey:VisitorTeamID" json:"visitor_team,omitempty"`
}

// TableName specifies the table name for GORM.
func (Match) TableName() string {
	return "matches"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Match) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}

// HasResult reports whether both final goal counts are recorded.
func (m *Match) HasResult() bool {
	return m.GoalsLocal != nil && m.GoalsVisitor != nil
}
