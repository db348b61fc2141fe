// Package repository provides data access layer for prediction module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	groupModel "github.com/festy23/prode/internal/group/model"
	predictionModel "github.com/festy23/prode/internal/prediction/model"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
)

// Repository defines the persistence port used by the prediction engine.
type Repository interface {
	// GetMatchByID finds a match with its teams.
	GetMatchByID(ctx context.Context, matchID int64) (*tournamentModel.Match, error)

	// GetPredictionsByMatch returns every prediction referencing the match, across all groups.
	GetPredictionsByMatch(ctx context.Context, matchID int64) ([]predictionModel.Prediction, error)

	// GetGroupWithMembers finds a group with its memberships and their users.
	GetGroupWithMembers(ctx context.Context, groupID int64) (*groupModel.Group, error)

	// GetTournamentWithMatches finds a tournament with its matches.
	GetTournamentWithMatches(ctx context.Context, tournamentID int64) (*tournamentModel.Tournament, error)

	// GetGroupIDsByTournament returns the IDs of every group following the tournament.
	GetGroupIDsByTournament(ctx context.Context, tournamentID int64) ([]int64, error)

	// GetGroupPredictionKeys returns the (group, match, user) slots already present for a group.
	GetGroupPredictionKeys(ctx context.Context, groupID int64) (map[predictionModel.Key]struct{}, error)

	// CreatePredictions inserts predictions in one batch, skipping slots that already exist.
	// Returns the number of inserted rows.
	CreatePredictions(ctx context.Context, predictions []predictionModel.Prediction) (int64, error)

	// UpdatePoints stores the points of every given prediction; all rows or none are written.
	UpdatePoints(ctx context.Context, predictions []predictionModel.Prediction) error

	// GetByID finds a prediction with its match.
	GetByID(ctx context.Context, predictionID int64) (*predictionModel.Prediction, error)

	// GetByKey finds the prediction of a (group, match, user) slot with its match.
	GetByKey(ctx context.Context, key predictionModel.Key) (*predictionModel.Prediction, error)

	// GetByGroupMatch returns every prediction of a group for one match, ordered by user.
	GetByGroupMatch(ctx context.Context, groupID, matchID int64) ([]predictionModel.Prediction, error)

	// UpdateGoals stores the predicted goals of a prediction whose match is still open.
	// It returns ErrPredictionLocked when the match has a result or the prediction is scored.
	UpdateGoals(ctx context.Context, predictionID int64, goalsLocal, goalsVisitor int) error

	// IsActiveMember reports whether the user is an active member of the group.
	IsActiveMember(ctx context.Context, groupID int64, userID string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new prediction repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetMatchByID finds a match with its teams.
func (r *repository) GetMatchByID(ctx context.Context, matchID int64) (*tournamentModel.Match, error) {
	var match tournamentModel.Match
	err := r.db.WithContext(ctx).
		Preload("LocalTeam").
		Preload("VisitorTeam").
		Where("id = ?", matchID).
		First(&match).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, predictionModel.ErrMatchNotFound
		}
		r.logger.Errorw("GetMatchByID database error", "match_id", matchID, "error", err)
		return nil, err
	}

	return &match, nil
}

// GetPredictionsByMatch returns every prediction referencing the match.
func (r *repository) GetPredictionsByMatch(ctx context.Context, matchID int64) ([]predictionModel.Prediction, error) {
	r.logger.Debugw("GetPredictionsByMatch called", "match_id", matchID)

	var predictions []predictionModel.Prediction
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("id ASC").
		Find(&predictions).Error

	if err != nil {
		r.logger.Errorw("GetPredictionsByMatch database error", "match_id", matchID, "error", err)
		return nil, err
	}

	if predictions == nil {
		return []predictionModel.Prediction{}, nil
	}

	return predictions, nil
}

// GetGroupWithMembers finds a group with its memberships and their users.
func (r *repository) GetGroupWithMembers(ctx context.Context, groupID int64) (*groupModel.Group, error) {
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
			return nil, predictionModel.ErrGroupNotFound
		}
		r.logger.Errorw("GetGroupWithMembers database error", "group_id", groupID, "error", err)
		return nil, err
	}

	return &group, nil
}

// GetTournamentWithMatches finds a tournament with its matches.
func (r *repository) GetTournamentWithMatches(
	ctx context.Context,
	tournamentID int64,
) (*tournamentModel.Tournament, error) {
	var tournament tournamentModel.Tournament
	err := r.db.WithContext(ctx).
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at ASC, id ASC")
		}).
		Where("id = ?", tournamentID).
		First(&tournament).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, predictionModel.ErrTournamentNotFound
		}
		r.logger.Errorw("GetTournamentWithMatches database error", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	return &tournament, nil
}

// GetGroupIDsByTournament returns the IDs of every group following the tournament.
func (r *repository) GetGroupIDsByTournament(ctx context.Context, tournamentID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&groupModel.Group{}).
		Where("tournament_id = ?", tournamentID).
		Order("id ASC").
		Pluck("id", &ids).Error

	if err != nil {
		r.logger.Errorw("GetGroupIDsByTournament database error", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	if ids == nil {
		return []int64{}, nil
	}

	return ids, nil
}

// GetGroupPredictionKeys returns the slots already present for a group.
func (r *repository) GetGroupPredictionKeys(
	ctx context.Context,
	groupID int64,
) (map[predictionModel.Key]struct{}, error) {
	var rows []struct {
		MatchID int64
		UserID  string
	}
	err := r.db.WithContext(ctx).
		Model(&predictionModel.Prediction{}).
		Select("match_id, user_id").
		Where("group_id = ?", groupID).
		Scan(&rows).Error

	if err != nil {
		r.logger.Errorw("GetGroupPredictionKeys database error", "group_id", groupID, "error", err)
		return nil, err
	}

	keys := make(map[predictionModel.Key]struct{}, len(rows))
	for _, row := range rows {
		keys[predictionModel.Key{GroupID: groupID, MatchID: row.MatchID, UserID: row.UserID}] = struct{}{}
	}

	r.logger.Debugw("GetGroupPredictionKeys completed", "group_id", groupID, "count", len(keys))
	return keys, nil
}

// CreateBatchSize bounds the rows of one INSERT so that large groups stay
// below the bind parameter limits of PostgreSQL and SQLite.
const CreateBatchSize = 500

// CreatePredictions inserts predictions in batches of CreateBatchSize inside one transaction.
// Rows colliding with the (group_id, match_id, user_id) unique index are skipped.
func (r *repository) CreatePredictions(ctx context.Context, predictions []predictionModel.Prediction) (int64, error) {
	if len(predictions) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&predictions, CreateBatchSize)

	if result.Error != nil {
		r.logger.Errorw("CreatePredictions database error", "count", len(predictions), "error", result.Error)
		return 0, result.Error
	}

	r.logger.Debugw("CreatePredictions completed", "requested", len(predictions), "inserted", result.RowsAffected)
	return result.RowsAffected, nil
}

// UpdatePoints stores the points of every given prediction inside one transaction.
func (r *repository) UpdatePoints(ctx context.Context, predictions []predictionModel.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range predictions {
			result := tx.Model(&predictionModel.Prediction{}).
				Where("id = ?", p.ID).
				Update("points", p.Points)
			if result.Error != nil {
				r.logger.Errorw("UpdatePoints database error", "prediction_id", p.ID, "error", result.Error)
				return result.Error
			}
			if result.RowsAffected == 0 {
				return predictionModel.ErrPredictionNotFound
			}
		}
		return nil
	})
}

// GetByID finds a prediction with its match.
func (r *repository) GetByID(ctx context.Context, predictionID int64) (*predictionModel.Prediction, error) {
	var prediction predictionModel.Prediction
	err := r.db.WithContext(ctx).
		Preload("Match").
		Where("id = ?", predictionID).
		First(&prediction).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, predictionModel.ErrPredictionNotFound
		}
		r.logger.Errorw("GetByID database error", "prediction_id", predictionID, "error", err)
		return nil, err
	}

	return &prediction, nil
}

// GetByKey finds the prediction of a (group, match, user) slot with its match.
func (r *repository) GetByKey(ctx context.Context, key predictionModel.Key) (*predictionModel.Prediction, error) {
	var prediction predictionModel.Prediction
	err := r.db.WithContext(ctx).
		Preload("Match").
		Where("group_id = ? AND match_id = ? AND user_id = ?", key.GroupID, key.MatchID, key.UserID).
		First(&prediction).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, predictionModel.ErrPredictionNotFound
		}
		r.logger.Errorw("GetByKey database error",
			"group_id", key.GroupID, "match_id", key.MatchID, "user_id", key.UserID, "error", err)
		return nil, err
	}

	return &prediction, nil
}

// GetByGroupMatch returns every prediction of a group for one match.
func (r *repository) GetByGroupMatch(
	ctx context.Context,
	groupID, matchID int64,
) ([]predictionModel.Prediction, error) {
	var predictions []predictionModel.Prediction
	err := r.db.WithContext(ctx).
		Preload("Match").
		Where("group_id = ? AND match_id = ?", groupID, matchID).
		Order("user_id ASC").
		Find(&predictions).Error

	if err != nil {
		r.logger.Errorw("GetByGroupMatch database error", "group_id", groupID, "match_id", matchID, "error", err)
		return nil, err
	}

	if predictions == nil {
		return []predictionModel.Prediction{}, nil
	}

	return predictions, nil
}

// openMatchCondition holds while the prediction is unscored and its match has no result.
// points IS NULL is checked against the latest row version, so an edit racing a
// concurrent closure loses once the closure has written points.
const openMatchCondition = `predictions.points IS NULL AND NOT EXISTS (
	SELECT 1 FROM matches
	WHERE matches.id = predictions.match_id
	  AND (matches.is_closed = ? OR matches.goals_local IS NOT NULL OR matches.goals_visitor IS NOT NULL)
)`

// UpdateGoals stores the predicted goals of a prediction while its match is open.
func (r *repository) UpdateGoals(ctx context.Context, predictionID int64, goalsLocal, goalsVisitor int) error {
	result := r.db.WithContext(ctx).
		Model(&predictionModel.Prediction{}).
		Where("id = ?", predictionID).
		Where(openMatchCondition, true).
		Updates(map[string]interface{}{
			"goals_local":   goalsLocal,
			"goals_visitor": goalsVisitor,
		})

	if result.Error != nil {
		r.logger.Errorw("UpdateGoals database error", "prediction_id", predictionID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&predictionModel.Prediction{}).
			Where("id = ?", predictionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return predictionModel.ErrPredictionNotFound
		}
		r.logger.Debugw("UpdateGoals skipped, match no longer open", "prediction_id", predictionID)
		return predictionModel.ErrPredictionLocked
	}

	return nil
}

// IsActiveMember reports whether the user is an active member of the group.
func (r *repository) IsActiveMember(ctx context.Context, groupID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&groupModel.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND is_active = ?", groupID, userID, true).
		Count(&count).Error

	if err != nil {
		r.logger.Errorw("IsActiveMember database error", "group_id", groupID, "user_id", userID, "error", err)
		return false, err
	}

	return count > 0, nil
}
