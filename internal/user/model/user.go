package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user entity in the system.
// Identity itself is managed elsewhere; this table only mirrors what predictions reference.
type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id;type:varchar(255)"                json:"user_id"`
	Username  string    `gorm:"column:username;type:varchar(255);not null"                 json:"username"`
	Email     *string   `gorm:"column:email;type:varchar(255)"                             json:"email,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true;index:idx_users_active" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                                 json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"                                 json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
