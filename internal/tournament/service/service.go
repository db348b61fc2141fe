// Package service provides business logic layer for tournament module.
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/prode/internal/metrics"
	predictionService "github.com/festy23/prode/internal/prediction/service"
	"github.com/festy23/prode/internal/prediction/scoring"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
	"github.com/festy23/prode/internal/tournament/repository"
	"github.com/festy23/prode/pkg/retry"
)

// CloserFactory builds a match closer bound to the given transaction.
type CloserFactory func(tx *gorm.DB) predictionService.Closer

// Service defines the interface for tournament business logic operations.
type Service interface {
	// AddTournament creates a tournament with its teams and matches.
	AddTournament(ctx context.Context, req *tournamentModel.AddTournamentRequest) (*tournamentModel.TournamentResponse, error)

	// GetTournament returns a tournament with its teams and matches.
	GetTournament(ctx context.Context, tournamentID int64) (*tournamentModel.TournamentResponse, error)

	// AddMatches appends matches to a tournament and synchronizes its groups.
	AddMatches(ctx context.Context, req *tournamentModel.AddMatchesRequest) (*tournamentModel.TournamentResponse, error)

	// RecordMatchResult stores the final score, closes the match and scores its predictions.
	RecordMatchResult(ctx context.Context, req *tournamentModel.RecordResultRequest) (*tournamentModel.MatchResponse, error)

	// ReprocessMatch scores the predictions of an already played match again.
	ReprocessMatch(ctx context.Context, matchID int64) (*tournamentModel.MatchResponse, error)
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	newCloser CloserFactory
	sync      predictionService.Synchronizer
	retryCfg  retry.Config
	metrics   *metrics.Metrics
	logger    *zap.SugaredLogger
}

// New creates a new tournament service instance.
func New(
	repo repository.Repository,
	db *gorm.DB,
	newCloser CloserFactory,
	sync predictionService.Synchronizer,
	retryCfg retry.Config,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:      repo,
		db:        db,
		newCloser: newCloser,
		sync:      sync,
		retryCfg:  retryCfg,
		metrics:   m,
		logger:    logger,
	}
}

// AddTournament creates a tournament with its teams and matches in a transaction.
func (s *service) AddTournament(
	ctx context.Context,
	req *tournamentModel.AddTournamentRequest,
) (*tournamentModel.TournamentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, tournamentModel.ErrInvalidTournamentName
	}
	teamNames, err := normalizeTeams(req.Teams)
	if err != nil {
		return nil, err
	}

	var tournamentID int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		tournament := &tournamentModel.Tournament{Name: name, IsActive: true}
		if err := txRepo.Create(ctx, tournament); err != nil {
			return err
		}
		tournamentID = tournament.ID

		teams := make([]tournamentModel.Team, 0, len(teamNames))
		for _, teamName := range teamNames {
			teams = append(teams, tournamentModel.Team{TournamentID: tournament.ID, Name: teamName})
		}
		if err := txRepo.CreateTeams(ctx, teams); err != nil {
			return err
		}

		matches, err := buildMatches(tournament.ID, teams, req.Matches)
		if err != nil {
			return err
		}
		return txRepo.CreateMatches(ctx, matches)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("AddTournament completed",
		"tournament_id", tournamentID, "teams", len(teamNames), "matches", len(req.Matches))
	return s.GetTournament(ctx, tournamentID)
}

// GetTournament returns a tournament with its teams and matches.
func (s *service) GetTournament(
	ctx context.Context,
	tournamentID int64,
) (*tournamentModel.TournamentResponse, error) {
	if tournamentID <= 0 {
		return nil, tournamentModel.ErrInvalidTournamentID
	}

	tournament, err := s.repo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	return toTournamentResponse(tournament), nil
}

// AddMatches appends matches to a tournament, then synchronizes every group following it.
// A failed synchronization is logged; the matches stay committed and the next sync fills the gap.
func (s *service) AddMatches(
	ctx context.Context,
	req *tournamentModel.AddMatchesRequest,
) (*tournamentModel.TournamentResponse, error) {
	if req.TournamentID <= 0 {
		return nil, tournamentModel.ErrInvalidTournamentID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		if _, err := txRepo.GetByID(ctx, req.TournamentID); err != nil {
			return err
		}
		teams, err := txRepo.GetTeams(ctx, req.TournamentID)
		if err != nil {
			return err
		}
		matches, err := buildMatches(req.TournamentID, teams, req.Matches)
		if err != nil {
			return err
		}
		return txRepo.CreateMatches(ctx, matches)
	})
	if err != nil {
		return nil, err
	}

	if err := s.sync.SynchronizeTournament(ctx, req.TournamentID); err != nil {
		s.logger.Warnw("AddMatches synchronization failed",
			"tournament_id", req.TournamentID, "error", err)
	}

	s.logger.Infow("AddMatches completed", "tournament_id", req.TournamentID, "matches", len(req.Matches))
	return s.GetTournament(ctx, req.TournamentID)
}

// RecordMatchResult stores the final score and scores the match's predictions in one transaction.
// The transaction is retried as a whole on serialization failures and dropped connections.
func (s *service) RecordMatchResult(
	ctx context.Context,
	req *tournamentModel.RecordResultRequest,
) (*tournamentModel.MatchResponse, error) {
	if req.MatchID <= 0 {
		return nil, tournamentModel.ErrInvalidMatchID
	}
	if req.GoalsLocal == nil || req.GoalsVisitor == nil || *req.GoalsLocal < 0 || *req.GoalsVisitor < 0 {
		return nil, tournamentModel.ErrInvalidGoals
	}

	var closing bool
	var scored int
	err := retry.Do(ctx, s.retryConfig("RecordMatchResult", req.MatchID), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txRepo := repository.New(tx, s.logger)

			match, err := txRepo.GetMatchForUpdate(ctx, req.MatchID)
			if err != nil {
				return err
			}
			if err := txRepo.SetResult(ctx, match.ID, *req.GoalsLocal, *req.GoalsVisitor); err != nil {
				return err
			}

			match.GoalsLocal = req.GoalsLocal
			match.GoalsVisitor = req.GoalsVisitor
			match.IsClosed = true

			closing = true
			scored, err = s.newCloser(tx).ScoreMatch(ctx, match)
			return err
		})
	})
	s.observeClosure(closing, scored, err)
	if err != nil {
		s.logger.Errorw("RecordMatchResult failed", "match_id", req.MatchID, "error", err)
		return nil, err
	}

	s.logger.Infow("RecordMatchResult completed",
		"match_id", req.MatchID,
		"goals_local", *req.GoalsLocal,
		"goals_visitor", *req.GoalsVisitor,
	)
	return s.getMatch(ctx, req.MatchID)
}

// ReprocessMatch scores the predictions of an already played match again.
func (s *service) ReprocessMatch(ctx context.Context, matchID int64) (*tournamentModel.MatchResponse, error) {
	if matchID <= 0 {
		return nil, tournamentModel.ErrInvalidMatchID
	}

	var closing bool
	var scored int
	err := retry.Do(ctx, s.retryConfig("ReprocessMatch", matchID), func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			match, err := repository.New(tx, s.logger).GetMatchForUpdate(ctx, matchID)
			if err != nil {
				return err
			}
			if !match.HasResult() {
				return tournamentModel.ErrMatchNotPlayed
			}
			closing = true
			scored, err = s.newCloser(tx).ScoreMatch(ctx, match)
			return err
		})
	})
	s.observeClosure(closing, scored, err)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("ReprocessMatch completed", "match_id", matchID)
	return s.getMatch(ctx, matchID)
}

func (s *service) retryConfig(op string, matchID int64) retry.Config {
	cfg := s.retryCfg
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		s.logger.Warnw(op+" retrying", "match_id", matchID, "attempt", attempt, "retry_in", delay, "error", err)
	}
	return cfg
}

// observeClosure records one closure per request, after the retried transaction settled.
// Requests that failed before reaching the closure are not counted.
func (s *service) observeClosure(reached bool, scored int, err error) {
	if !reached {
		return
	}
	s.metrics.ObserveMatchClosure(err)
	if err == nil {
		s.metrics.AddPredictionsScored(scored)
	}
}

func (s *service) getMatch(ctx context.Context, matchID int64) (*tournamentModel.MatchResponse, error) {
	match, err := s.repo.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	resp := toMatchResponse(match)
	return &resp, nil
}

// normalizeTeams trims team names and rejects blanks, duplicates and lists shorter than two.
func normalizeTeams(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			return nil, tournamentModel.ErrDuplicateTeam
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) < 2 {
		return nil, tournamentModel.ErrTooFewTeams
	}
	return out, nil
}

// buildMatches resolves team names against the tournament's teams.
func buildMatches(
	tournamentID int64,
	teams []tournamentModel.Team,
	inputs []tournamentModel.MatchInput,
) ([]tournamentModel.Match, error) {
	byName := make(map[string]int64, len(teams))
	for _, team := range teams {
		byName[team.Name] = team.ID
	}

	matches := make([]tournamentModel.Match, 0, len(inputs))
	for _, in := range inputs {
		localID, ok := byName[strings.TrimSpace(in.LocalTeam)]
		if !ok {
			return nil, tournamentModel.ErrUnknownTeam
		}
		visitorID, ok := byName[strings.TrimSpace(in.VisitorTeam)]
		if !ok {
			return nil, tournamentModel.ErrUnknownTeam
		}
		if localID == visitorID {
			return nil, tournamentModel.ErrSameTeam
		}
		matches = append(matches, tournamentModel.Match{
			TournamentID:  tournamentID,
			LocalTeamID:   localID,
			VisitorTeamID: visitorID,
			DoublePoints:  in.DoublePoints,
			IsActive:      true,
			ScheduledAt:   in.ScheduledAt.UTC(),
		})
	}
	return matches, nil
}

func toTournamentResponse(t *tournamentModel.Tournament) *tournamentModel.TournamentResponse {
	resp := &tournamentModel.TournamentResponse{
		ID:       t.ID,
		Name:     t.Name,
		IsActive: t.IsActive,
		Teams:    make([]tournamentModel.TeamResponse, 0, len(t.Teams)),
		Matches:  make([]tournamentModel.MatchResponse, 0, len(t.Matches)),
	}
	for _, team := range t.Teams {
		resp.Teams = append(resp.Teams, tournamentModel.TeamResponse{ID: team.ID, Name: team.Name})
	}
	for i := range t.Matches {
		resp.Matches = append(resp.Matches, toMatchResponse(&t.Matches[i]))
	}
	return resp
}

func toMatchResponse(m *tournamentModel.Match) tournamentModel.MatchResponse {
	resp := tournamentModel.MatchResponse{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		GoalsLocal:   m.GoalsLocal,
		GoalsVisitor: m.GoalsVisitor,
		DoublePoints: m.DoublePoints,
		IsClosed:     m.IsClosed,
		ScheduledAt:  m.ScheduledAt,
	}
	if m.LocalTeam != nil {
		resp.LocalTeam = m.LocalTeam.Name
	}
	if m.VisitorTeam != nil {
		resp.VisitorTeam = m.VisitorTeam.Name
	}
	if m.HasResult() {
		resp.Outcome = scoring.ResolveOutcome(*m.GoalsLocal, *m.GoalsVisitor).String()
	}
	return resp
}
