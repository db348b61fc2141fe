// Package service provides the prediction lifecycle: match closure, group
// synchronization and guarded reads and edits of predictions.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/prode/internal/metrics"
	predictionModel "github.com/festy23/prode/internal/prediction/model"
	"github.com/festy23/prode/internal/prediction/repository"
	"github.com/festy23/prode/internal/prediction/scoring"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
	"github.com/festy23/prode/pkg/clock"
)

// Closer recomputes the points of every prediction of a match.
type Closer interface {
	// CloseMatch scores all predictions of a match whose result is recorded.
	CloseMatch(ctx context.Context, match *tournamentModel.Match) error

	// ScoreMatch is CloseMatch that also returns how many predictions were scored.
	ScoreMatch(ctx context.Context, match *tournamentModel.Match) (int, error)
}

// Synchronizer materializes missing predictions.
type Synchronizer interface {
	// SynchronizeGroupPredictions creates a placeholder prediction for every
	// active member and every match of the group's tournament that lacks one.
	SynchronizeGroupPredictions(ctx context.Context, groupID int64) error

	// SynchronizeTournament synchronizes every group following the tournament.
	SynchronizeTournament(ctx context.Context, tournamentID int64) error
}

// Service defines the interface for prediction business logic operations.
type Service interface {
	Closer
	Synchronizer

	// GetPrediction returns a prediction as seen by viewerID.
	GetPrediction(
		ctx context.Context,
		predictionID int64,
		viewerID string,
	) (*predictionModel.PredictionResponse, error)

	// UpdatePrediction sets the goals of the caller's prediction while the match is still open.
	UpdatePrediction(
		ctx context.Context,
		req *predictionModel.UpdatePredictionRequest,
	) (*predictionModel.PredictionResponse, error)

	// GetMatchPredictions returns all predictions of a group for a match as seen by viewerID.
	GetMatchPredictions(
		ctx context.Context,
		groupID, matchID int64,
		viewerID string,
	) (*predictionModel.MatchPredictionsResponse, error)
}

type service struct {
	repo    repository.Repository
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

// New creates a new prediction service instance.
func New(
	repo repository.Repository,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		clock:   clk,
		metrics: m,
		logger:  logger,
	}
}

// CloseMatch scores all predictions of a match.
// Points are written in one transaction; a failed write is returned and nothing is stored.
// Running it again on an unchanged result stores the same points.
func (s *service) CloseMatch(ctx context.Context, match *tournamentModel.Match) error {
	_, err := s.ScoreMatch(ctx, match)
	return err
}

// ScoreMatch runs the closure and returns the number of predictions scored.
// Closure metrics are recorded by the caller once its transaction commits.
func (s *service) ScoreMatch(ctx context.Context, match *tournamentModel.Match) (int, error) {
	if match == nil {
		return 0, predictionModel.ErrMatchNotFound
	}
	if !match.HasResult() {
		return 0, predictionModel.ErrMatchResultMissing
	}

	predictions, err := s.repo.GetPredictionsByMatch(ctx, match.ID)
	if err != nil {
		return 0, fmt.Errorf("load predictions for match %d: %w", match.ID, err)
	}

	if len(predictions) == 0 {
		s.logger.Infow("CloseMatch completed", "match_id", match.ID, "scored", 0)
		return 0, nil
	}

	for i := range predictions {
		points := scoring.CalculatePoints(
			*match.GoalsLocal,
			*match.GoalsVisitor,
			predictions[i].GoalsLocal,
			predictions[i].GoalsVisitor,
			match.DoublePoints,
		)
		predictions[i].Points = &points
	}

	if err := s.repo.UpdatePoints(ctx, predictions); err != nil {
		s.logger.Errorw("CloseMatch failed to persist points", "match_id", match.ID, "error", err)
		return 0, fmt.Errorf("persist points for match %d: %w", match.ID, err)
	}

	s.logger.Infow("CloseMatch completed",
		"match_id", match.ID,
		"goals_local", *match.GoalsLocal,
		"goals_visitor", *match.GoalsVisitor,
		"double_points", match.DoublePoints,
		"scored", len(predictions),
	)
	return len(predictions), nil
}

// SynchronizeGroupPredictions creates the group's missing predictions.
// A missing group or tournament is a no-op.
func (s *service) SynchronizeGroupPredictions(ctx context.Context, groupID int64) error {
	s.logger.Debugw("SynchronizeGroupPredictions called", "group_id", groupID)

	group, err := s.repo.GetGroupWithMembers(ctx, groupID)
	if err != nil {
		if errors.Is(err, predictionModel.ErrGroupNotFound) {
			s.logger.Debugw("SynchronizeGroupPredictions skipped, group not found", "group_id", groupID)
			return nil
		}
		return err
	}

	tournament, err := s.repo.GetTournamentWithMatches(ctx, group.TournamentID)
	if err != nil {
		if errors.Is(err, predictionModel.ErrTournamentNotFound) {
			s.logger.Debugw("SynchronizeGroupPredictions skipped, tournament not found",
				"group_id", groupID, "tournament_id", group.TournamentID)
			return nil
		}
		return err
	}

	if len(tournament.Matches) == 0 {
		return nil
	}

	members := group.ActiveMemberIDs()
	if len(members) == 0 {
		return nil
	}

	existing, err := s.repo.GetGroupPredictionKeys(ctx, groupID)
	if err != nil {
		return err
	}

	missing := missingPredictions(group.ID, tournament, members, existing)
	if len(missing) == 0 {
		s.logger.Debugw("SynchronizeGroupPredictions completed, nothing missing", "group_id", groupID)
		return nil
	}

	inserted, err := s.repo.CreatePredictions(ctx, missing)
	if err != nil {
		s.logger.Errorw("SynchronizeGroupPredictions failed", "group_id", groupID, "error", err)
		return fmt.Errorf("create predictions for group %d: %w", groupID, err)
	}

	s.metrics.AddPredictionsCreated(int(inserted))
	s.logger.Infow("SynchronizeGroupPredictions completed",
		"group_id", groupID,
		"tournament_id", tournament.ID,
		"members", len(members),
		"matches", len(tournament.Matches),
		"created", inserted,
	)
	return nil
}

// missingPredictions builds a placeholder for every member x match slot absent from existing.
func missingPredictions(
	groupID int64,
	tournament *tournamentModel.Tournament,
	members []string,
	existing map[predictionModel.Key]struct{},
) []predictionModel.Prediction {
	missing := make([]predictionModel.Prediction, 0)
	for _, userID := range members {
		for _, match := range tournament.Matches {
			key := predictionModel.Key{GroupID: groupID, MatchID: match.ID, UserID: userID}
			if _, ok := existing[key]; ok {
				continue
			}
			missing = append(missing, predictionModel.Prediction{
				GroupID:      groupID,
				MatchID:      match.ID,
				TournamentID: tournament.ID,
				UserID:       userID,
			})
			existing[key] = struct{}{}
		}
	}
	return missing
}

// SynchronizeTournament synchronizes every group following the tournament.
// All groups are attempted; failures are joined.
func (s *service) SynchronizeTournament(ctx context.Context, tournamentID int64) error {
	groupIDs, err := s.repo.GetGroupIDsByTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	var errs []error
	for _, groupID := range groupIDs {
		if err := s.SynchronizeGroupPredictions(ctx, groupID); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Infow("SynchronizeTournament completed",
		"tournament_id", tournamentID, "groups", len(groupIDs), "failed", len(errs))
	return errors.Join(errs...)
}

// GetPrediction returns a prediction as seen by viewerID.
func (s *service) GetPrediction(
	ctx context.Context,
	predictionID int64,
	viewerID string,
) (*predictionModel.PredictionResponse, error) {
	if predictionID <= 0 {
		return nil, predictionModel.ErrInvalidPredictionID
	}
	if err := validateUserID(viewerID); err != nil {
		return nil, err
	}

	prediction, err := s.repo.GetByID(ctx, predictionID)
	if err != nil {
		return nil, err
	}

	if prediction.UserID != viewerID {
		if err := s.ensureMember(ctx, prediction.GroupID, viewerID); err != nil {
			return nil, err
		}
	}

	resp := toResponse(prediction, viewerID, s.clock.Now())
	return &resp, nil
}

// UpdatePrediction sets the goals of the caller's prediction.
func (s *service) UpdatePrediction(
	ctx context.Context,
	req *predictionModel.UpdatePredictionRequest,
) (*predictionModel.PredictionResponse, error) {
	if err := validateUpdateRequest(req); err != nil {
		return nil, err
	}

	key := predictionModel.Key{GroupID: req.GroupID, MatchID: req.MatchID, UserID: req.UserID}
	prediction, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !scoring.CanEdit(prediction, now) {
		s.logger.Debugw("UpdatePrediction rejected, match locked",
			"prediction_id", prediction.ID, "match_id", prediction.MatchID)
		return nil, predictionModel.ErrPredictionLocked
	}

	if err := s.repo.UpdateGoals(ctx, prediction.ID, *req.GoalsLocal, *req.GoalsVisitor); err != nil {
		s.logger.Errorw("UpdatePrediction failed", "prediction_id", prediction.ID, "error", err)
		return nil, err
	}

	prediction.GoalsLocal = req.GoalsLocal
	prediction.GoalsVisitor = req.GoalsVisitor

	s.logger.Infow("UpdatePrediction completed",
		"prediction_id", prediction.ID,
		"user_id", req.UserID,
		"match_id", req.MatchID,
	)
	resp := toResponse(prediction, req.UserID, now)
	return &resp, nil
}

// GetMatchPredictions returns all predictions of a group for a match as seen by viewerID.
func (s *service) GetMatchPredictions(
	ctx context.Context,
	groupID, matchID int64,
	viewerID string,
) (*predictionModel.MatchPredictionsResponse, error) {
	if groupID <= 0 {
		return nil, predictionModel.ErrInvalidGroupID
	}
	if matchID <= 0 {
		return nil, predictionModel.ErrInvalidMatchID
	}
	if err := validateUserID(viewerID); err != nil {
		return nil, err
	}

	if err := s.ensureMember(ctx, groupID, viewerID); err != nil {
		return nil, err
	}

	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	predictions, err := s.repo.GetByGroupMatch(ctx, groupID, matchID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	items := make([]predictionModel.PredictionResponse, 0, len(predictions))
	for i := range predictions {
		items = append(items, toResponse(&predictions[i], viewerID, now))
	}

	return &predictionModel.MatchPredictionsResponse{
		GroupID:     groupID,
		MatchID:     matchID,
		Visible:     scoring.MatchVisible(match, now),
		Predictions: items,
	}, nil
}

func (s *service) ensureMember(ctx context.Context, groupID int64, userID string) error {
	ok, err := s.repo.IsActiveMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return predictionModel.ErrNotGroupMember
	}
	return nil
}

// toResponse renders a prediction for a viewer, withholding goals the viewer may not see yet.
func toResponse(
	p *predictionModel.Prediction,
	viewerID string,
	now time.Time,
) predictionModel.PredictionResponse {
	resp := predictionModel.PredictionResponse{
		ID:           p.ID,
		GroupID:      p.GroupID,
		MatchID:      p.MatchID,
		TournamentID: p.TournamentID,
		UserID:       p.UserID,
		Points:       p.Points,
	}

	owner := p.UserID == viewerID
	if owner || scoring.CanWatch(p, now) {
		resp.GoalsLocal = p.GoalsLocal
		resp.GoalsVisitor = p.GoalsVisitor
	} else {
		resp.Hidden = true
	}
	resp.Editable = owner && scoring.CanEdit(p, now)

	return resp
}

func validateUpdateRequest(req *predictionModel.UpdatePredictionRequest) error {
	if req.GroupID <= 0 {
		return predictionModel.ErrInvalidGroupID
	}
	if req.MatchID <= 0 {
		return predictionModel.ErrInvalidMatchID
	}
	if err := validateUserID(req.UserID); err != nil {
		return err
	}
	if req.GoalsLocal == nil || req.GoalsVisitor == nil {
		return predictionModel.ErrInvalidGoals
	}
	if *req.GoalsLocal < 0 || *req.GoalsVisitor < 0 {
		return predictionModel.ErrInvalidGoals
	}
	return nil
}

func validateUserID(userID string) error {
	if len(userID) == 0 || len(userID) > 255 {
		return predictionModel.ErrInvalidUserID
	}
	return nil
}
