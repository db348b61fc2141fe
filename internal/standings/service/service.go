// Package service provides business logic layer for standings module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/prode/internal/standings/model"
	"github.com/festy23/prode/internal/standings/repository"
)

// Service defines the interface for standings business logic operations.
type Service interface {
	// GetGroupStandings returns the ranked table of a group.
	GetGroupStandings(ctx context.Context, groupID int64) (*model.GroupStandingsResponse, error)

	// GetPredictionStatistics returns prediction counts of a group.
	GetPredictionStatistics(ctx context.Context, groupID int64) (*model.PredictionStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new standings service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetGroupStandings returns the ranked table of a group.
func (s *service) GetGroupStandings(ctx context.Context, groupID int64) (*model.GroupStandingsResponse, error) {
	s.logger.Debugw("GetGroupStandings called", "group_id", groupID)

	if groupID <= 0 {
		return nil, model.ErrInvalidGroupID
	}

	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	standings, err := s.repo.GetMemberStandings(ctx, groupID)
	if err != nil {
		s.logger.Errorw("GetGroupStandings failed", "group_id", groupID, "error", err)
		return nil, err
	}

	rank(standings)

	s.logger.Infow("GetGroupStandings completed", "group_id", groupID, "count", len(standings))
	return &model.GroupStandingsResponse{
		GroupID:      group.ID,
		GroupName:    group.Name,
		TournamentID: group.TournamentID,
		Standings:    standings,
	}, nil
}

// GetPredictionStatistics returns prediction counts of a group.
func (s *service) GetPredictionStatistics(ctx context.Context, groupID int64) (*model.PredictionStatisticsResponse, error) {
	s.logger.Debugw("GetPredictionStatistics called", "group_id", groupID)

	if groupID <= 0 {
		return nil, model.ErrInvalidGroupID
	}

	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	stats, err := s.repo.GetPredictionStatistics(ctx, groupID)
	if err != nil {
		s.logger.Errorw("GetPredictionStatistics failed", "group_id", groupID, "error", err)
		return nil, err
	}

	return &model.PredictionStatisticsResponse{
		GroupID:    groupID,
		Statistics: *stats,
	}, nil
}

// rank assigns competition ranks to an ordered table: members level on
// points and exact hits share a rank and the next rank skips accordingly.
func rank(standings []model.MemberStanding) {
	for i := range standings {
		if i > 0 &&
			standings[i].Points == standings[i-1].Points &&
			standings[i].ExactHits == standings[i-1].ExactHits {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
}
