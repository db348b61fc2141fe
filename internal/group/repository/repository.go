// Package repository provides data access layer for group module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	groupModel "github.com/festy23/prode/internal/group/model"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
	userModel "github.com/festy23/prode/internal/user/model"
)

// Repository defines the interface for group data access operations.
type Repository interface {
	// Create inserts a group.
	Create(ctx context.Context, group *groupModel.Group) error

	// GetByID finds a group with its members and their users.
	GetByID(ctx context.Context, groupID int64) (*groupModel.Group, error)

	// GetByCode finds a group by join code.
	GetByCode(ctx context.Context, code string) (*groupModel.Group, error)

	// TournamentExists reports whether the tournament exists.
	TournamentExists(ctx context.Context, tournamentID int64) (bool, error)

	// UserExists reports whether the user exists.
	UserExists(ctx context.Context, userID string) (bool, error)

	// GetMember finds a membership regardless of its state.
	GetMember(ctx context.Context, groupID int64, userID string) (*groupModel.GroupMember, error)

	// AddMember inserts a membership.
	AddMember(ctx context.Context, member *groupModel.GroupMember) error

	// SetMemberActive activates or deactivates a membership.
	SetMemberActive(ctx context.Context, groupID int64, userID string, active bool) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new group repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a group.
func (r *repository) Create(ctx context.Context, group *groupModel.Group) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(group).Error
	if err != nil {
		if isDuplicateError(err) {
			return groupModel.ErrCodeTaken
		}
		r.logger.Errorw("Create group database error", "name", group.Name, "error", err)
		return err
	}
	return nil
}

// GetByID finds a group with its members and their users.
func (r *repository) GetByID(ctx context.Context, groupID int64) (*groupModel.Group, error) {
	var group groupModel.Group
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC, id ASC")
		}).
		Preload("Members.User").
		Where("id = ?", groupID).
		First(&group).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupModel.ErrGroupNotFound
		}
		r.logger.Errorw("GetByID database error", "group_id", groupID, "error", err)
		return nil, err
	}

	return &group, nil
}

// GetByCode finds a group by join code.
func (r *repository) GetByCode(ctx context.Context, code string) (*groupModel.Group, error) {
	var group groupModel.Group
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&group).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupModel.ErrGroupNotFound
		}
		r.logger.Errorw("GetByCode database error", "error", err)
		return nil, err
	}

	return &group, nil
}

// TournamentExists reports whether the tournament exists.
func (r *repository) TournamentExists(ctx context.Context, tournamentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&tournamentModel.Tournament{}).
		Where("id = ?", tournamentID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("TournamentExists database error", "tournament_id", tournamentID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// UserExists reports whether the user exists.
func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("UserExists database error", "user_id", userID, "error", err)
		return false, err
	}
	return count > 0, nil
}

// GetMember finds a membership regardless of its state.
func (r *repository) GetMember(ctx context.Context, groupID int64, userID string) (*groupModel.GroupMember, error) {
	var member groupModel.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupModel.ErrNotMember
		}
		r.logger.Errorw("GetMember database error", "group_id", groupID, "user_id", userID, "error", err)
		return nil, err
	}

	return &member, nil
}

// AddMember inserts a membership.
func (r *repository) AddMember(ctx context.Context, member *groupModel.GroupMember) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
	if err != nil {
		if isDuplicateError(err) {
			return groupModel.ErrAlreadyMember
		}
		r.logger.Errorw("AddMember database error",
			"group_id", member.GroupID, "user_id", member.UserID, "error", err)
		return err
	}
	return nil
}

// SetMemberActive activates or deactivates a membership.
func (r *repository) SetMemberActive(ctx context.Context, groupID int64, userID string, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&groupModel.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("is_active", active)

	if result.Error != nil {
		r.logger.Errorw("SetMemberActive database error",
			"group_id", groupID, "user_id", userID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return groupModel.ErrNotMember
	}

	return nil
}

// isDuplicateError reports unique constraint violations from PostgreSQL and SQLite.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
