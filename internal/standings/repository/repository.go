// Package repository provides data access layer for standings module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	groupModel "github.com/festy23/prode/internal/group/model"
	"github.com/festy23/prode/internal/standings/model"
)

// A scored prediction whose goals equal the final score on both sides.
const exactHit = `predictions.points IS NOT NULL
	AND predictions.goals_local = matches.goals_local
	AND predictions.goals_visitor = matches.goals_visitor`

// Repository defines the interface for standings data access operations.
type Repository interface {
	// GetGroup finds a group by ID.
	GetGroup(ctx context.Context, groupID int64) (*groupModel.Group, error)

	// GetMemberStandings returns point totals of the active members of a group, best first.
	GetMemberStandings(ctx context.Context, groupID int64) ([]model.MemberStanding, error)

	// GetPredictionStatistics counts the predictions of a group.
	GetPredictionStatistics(ctx context.Context, groupID int64) (*model.PredictionStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new standings repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetGroup finds a group by ID.
func (r *repository) GetGroup(ctx context.Context, groupID int64) (*groupModel.Group, error) {
	var group groupModel.Group
	err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrGroupNotFound
		}
		r.logger.Errorw("GetGroup database error", "group_id", groupID, "error", err)
		return nil, err
	}
	return &group, nil
}

// GetMemberStandings returns point totals of the active members of a group, best first.
// Ties on points are broken by exact hits, then by user ID.
func (r *repository) GetMemberStandings(ctx context.Context, groupID int64) ([]model.MemberStanding, error) {
	r.logger.Debugw("GetMemberStandings called", "group_id", groupID)

	var standings []model.MemberStanding

	err := r.db.WithContext(ctx).
		Table("group_members").
		Select(`
			group_members.user_id,
			users.username,
			COALESCE(SUM(predictions.points), 0) AS points,
			COALESCE(SUM(CASE WHEN `+exactHit+` THEN 1 ELSE 0 END), 0) AS exact_hits,
			COALESCE(SUM(CASE WHEN predictions.points > 0 AND NOT (`+exactHit+`) THEN 1 ELSE 0 END), 0) AS outcome_hits,
			COUNT(predictions.points) AS scored
		`).
		Joins("JOIN users ON users.user_id = group_members.user_id").
		Joins(`LEFT JOIN predictions ON predictions.group_id = group_members.group_id
			AND predictions.user_id = group_members.user_id`).
		Joins("LEFT JOIN matches ON matches.id = predictions.match_id").
		Where("group_members.group_id = ?", groupID).
		Where("group_members.is_active = ? AND users.is_active = ?", true, true).
		Group("group_members.user_id, users.username").
		Order("points DESC, exact_hits DESC, group_members.user_id ASC").
		Scan(&standings).Error

	if err != nil {
		r.logger.Errorw("GetMemberStandings database error", "group_id", groupID, "error", err)
		return nil, err
	}

	if standings == nil {
		standings = []model.MemberStanding{}
	}

	r.logger.Debugw("GetMemberStandings completed", "group_id", groupID, "count", len(standings))
	return standings, nil
}

// GetPredictionStatistics counts the predictions of a group.
func (r *repository) GetPredictionStatistics(ctx context.Context, groupID int64) (*model.PredictionStatistics, error) {
	r.logger.Debugw("GetPredictionStatistics called", "group_id", groupID)

	var result struct {
		Total       int64 `gorm:"column:total"`
		Submitted   int64 `gorm:"column:submitted"`
		Scored      int64 `gorm:"column:scored"`
		ExactHits   int64 `gorm:"column:exact_hits"`
		OutcomeHits int64 `gorm:"column:outcome_hits"`
		Misses      int64 `gorm:"column:misses"`
	}

	err := r.db.WithContext(ctx).
		Table("predictions").
		Select(`
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN predictions.goals_local IS NOT NULL THEN 1 ELSE 0 END), 0) AS submitted,
			COALESCE(SUM(CASE WHEN predictions.points IS NOT NULL THEN 1 ELSE 0 END), 0) AS scored,
			COALESCE(SUM(CASE WHEN `+exactHit+` THEN 1 ELSE 0 END), 0) AS exact_hits,
			COALESCE(SUM(CASE WHEN predictions.points > 0 AND NOT (`+exactHit+`) THEN 1 ELSE 0 END), 0) AS outcome_hits,
			COALESCE(SUM(CASE WHEN predictions.points = 0 THEN 1 ELSE 0 END), 0) AS misses
		`).
		Joins("JOIN matches ON matches.id = predictions.match_id").
		Where("predictions.group_id = ?", groupID).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetPredictionStatistics database error", "group_id", groupID, "error", err)
		return nil, err
	}

	stats := &model.PredictionStatistics{
		Total:       int(result.Total),
		Submitted:   int(result.Submitted),
		Scored:      int(result.Scored),
		ExactHits:   int(result.ExactHits),
		OutcomeHits: int(result.OutcomeHits),
		Misses:      int(result.Misses),
	}

	r.logger.Debugw("GetPredictionStatistics completed", "group_id", groupID, "total", stats.Total)
	return stats, nil
}
