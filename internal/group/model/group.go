package model

import (
	"time"

	"gorm.io/gorm"

	userModel "github.com/festy23/prode/internal/user/model"
)

// Group is a named set of members following one tournament.
type Group struct {
	ID           int64     `gorm:"primaryKey;column:id"                                      json:"id"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"                    json:"name"`
	Code         string    `gorm:"column:code;type:varchar(16);not null;uniqueIndex"         json:"code"`
	TournamentID int64     `gorm:"column:tournament_id;not null;index:idx_groups_tournament" json:"tournament_id"`
	AdminUserID  string    `gorm:"column:admin_user_id;type:varchar(255);not null"           json:"admin_user_id"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"                                json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null"                                json:"-"`

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "user_groups"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (g *Group) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return nil
}

// GroupMember is a user's membership in a group.
type GroupMember struct {
	ID       int64     `gorm:"primaryKey;column:id"                                                          json:"-"`
	GroupID  int64     `gorm:"column:group_id;not null;uniqueIndex:uq_group_members_group_user"              json:"group_id"`
	UserID   string    `gorm:"column:user_id;type:varchar(255);not null;uniqueIndex:uq_group_members_group_user" json:"user_id"`
	IsActive bool      `gorm:"column:is_active;not null;default:true"                                        json:"is_active"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"                                                     json:"joined_at"`

	User *userModel.User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (GroupMember) TableName() string {
	return "group_members"
}

// ActiveMemberIDs returns the user IDs of active members in membership order.
// A member whose user was loaded and is deactivated is skipped.
func (g *Group) ActiveMemberIDs() []string {
	ids := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if m.IsActive && (m.User == nil || m.User.IsActive) {
			ids = append(ids, m.UserID)
		}
	}
	return ids
}
