package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestUser_TableName(t *testing.T) {
	assert.Equal(t, "users", User{}.TableName())
}

func TestUser_BeforeUpdate(t *testing.T) {
	email := "alice@example.com"
	user := &User{
		UserID:    "u1",
		Username:  "alice",
		Email:     &email,
		IsActive:  true,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		UpdatedAt: time.Now().Add(-1 * time.Hour),
	}
	createdAt := user.CreatedAt
	oldUpdatedAt := user.UpdatedAt

	require.NoError(t, user.BeforeUpdate(nil))

	assert.True(t, user.UpdatedAt.After(oldUpdatedAt))
	assert.Equal(t, createdAt, user.CreatedAt)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, &email, user.Email)
}

func TestUser_Persistence(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&User{}))

	require.NoError(t, db.Create(&User{UserID: "u1", Username: "alice", IsActive: true}).Error)

	var got User
	require.NoError(t, db.First(&got, "user_id = ?", "u1").Error)
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.Email)
	assert.True(t, got.IsActive)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, db.Model(&got).Update("is_active", false).Error)
	require.NoError(t, db.First(&got, "user_id = ?", "u1").Error)
	assert.False(t, got.IsActive)
}
