// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/prode/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// GetByID finds user by user_id.
	GetByID(ctx context.Context, userID string) (*model.User, error)

	// Upsert inserts a user or refreshes username and email of an existing one.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)

	// UpdateIsActive updates user's is_active flag.
	UpdateIsActive(ctx context.Context, userID string, isActive bool) (*model.User, error)

	// GetPredictions returns the user's predictions across all groups, newest match first.
	GetPredictions(ctx context.Context, userID string) ([]model.UserPrediction, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetByID finds user by user_id.
func (r *repository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	r.logger.Debugw("GetByID called", "user_id", userID)

	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("GetByID database error", "user_id", userID, "error", err)
		return nil, err
	}

	return &user, nil
}

// Upsert inserts a user or refreshes username and email of an existing one.
// The activity flag of an existing user is left untouched.
func (r *repository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "email", "updated_at"}),
		}).
		Create(user).Error

	if err != nil {
		r.logger.Errorw("Upsert database error", "user_id", user.UserID, "error", err)
		return nil, err
	}

	return r.GetByID(ctx, user.UserID)
}

// UpdateIsActive updates user's is_active flag.
func (r *repository) UpdateIsActive(ctx context.Context, userID string, isActive bool) (*model.User, error) {
	r.logger.Infow("UpdateIsActive called", "user_id", userID, "new_state", isActive)

	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("is_active", isActive)

	if result.Error != nil {
		r.logger.Errorw("UpdateIsActive database error", "user_id", userID, "error", result.Error)
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, model.ErrUserNotFound
	}

	return r.GetByID(ctx, userID)
}

// GetPredictions returns the user's predictions across all groups.
func (r *repository) GetPredictions(ctx context.Context, userID string) ([]model.UserPrediction, error) {
	r.logger.Debugw("GetPredictions called", "user_id", userID)

	var predictions []model.UserPrediction
	err := r.db.WithContext(ctx).
		Table("predictions").
		Select(`predictions.id AS prediction_id,
			predictions.group_id,
			user_groups.name AS group_name,
			predictions.match_id,
			predictions.tournament_id,
			matches.scheduled_at,
			predictions.goals_local,
			predictions.goals_visitor,
			predictions.points`).
		Joins("JOIN user_groups ON user_groups.id = predictions.group_id").
		Joins("JOIN matches ON matches.id = predictions.match_id").
		Where("predictions.user_id = ?", userID).
		Order("matches.scheduled_at DESC, predictions.id ASC").
		Scan(&predictions).Error

	if err != nil {
		r.logger.Errorw("GetPredictions database error", "user_id", userID, "error", err)
		return nil, err
	}

	if predictions == nil {
		predictions = []model.UserPrediction{}
	}

	r.logger.Debugw("GetPredictions completed", "user_id", userID, "count", len(predictions))
	return predictions, nil
}
