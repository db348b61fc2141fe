// Package repository provides data access layer for tournament module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tournamentModel "github.com/festy23/prode/internal/tournament/model"
)

// Repository defines the interface for tournament data access operations.
type Repository interface {
	// Create inserts a tournament.
	Create(ctx context.Context, tournament *tournamentModel.Tournament) error

	// CreateTeams inserts teams in one batch.
	CreateTeams(ctx context.Context, teams []tournamentModel.Team) error

	// CreateMatches inserts matches in one batch.
	CreateMatches(ctx context.Context, matches []tournamentModel.Match) error

	// GetByID finds a tournament with its teams and matches.
	GetByID(ctx context.Context, tournamentID int64) (*tournamentModel.Tournament, error)

	// GetTeams returns the teams of a tournament.
	GetTeams(ctx context.Context, tournamentID int64) ([]tournamentModel.Team, error)

	// GetMatch finds a match with its teams.
	GetMatch(ctx context.Context, matchID int64) (*tournamentModel.Match, error)

	// GetMatchForUpdate finds a match and locks its row until the transaction ends.
	GetMatchForUpdate(ctx context.Context, matchID int64) (*tournamentModel.Match, error)

	// SetResult records the final score and closes the match.
	SetResult(ctx context.Context, matchID int64, goalsLocal, goalsVisitor int) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new tournament repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a tournament.
func (r *repository) Create(ctx context.Context, tournament *tournamentModel.Tournament) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tournament).Error
	if err != nil {
		if isDuplicateError(err) {
			return tournamentModel.ErrTournamentExists
		}
		r.logger.Errorw("Create tournament database error", "name", tournament.Name, "error", err)
		return err
	}
	return nil
}

// CreateTeams inserts teams in one batch.
func (r *repository) CreateTeams(ctx context.Context, teams []tournamentModel.Team) error {
	if len(teams) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Create(&teams).Error
	if err != nil {
		if isDuplicateError(err) {
			return tournamentModel.ErrDuplicateTeam
		}
		r.logger.Errorw("CreateTeams database error", "count", len(teams), "error", err)
		return err
	}
	return nil
}

// CreateMatches inserts matches in one batch.
func (r *repository) CreateMatches(ctx context.Context, matches []tournamentModel.Match) error {
	if len(matches) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&matches).Error
	if err != nil {
		r.logger.Errorw("CreateMatches database error", "count", len(matches), "error", err)
		return err
	}
	return nil
}

// GetByID finds a tournament with its teams and matches.
func (r *repository) GetByID(ctx context.Context, tournamentID int64) (*tournamentModel.Tournament, error) {
	var tournament tournamentModel.Tournament
	err := r.db.WithContext(ctx).
		Preload("Teams", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at ASC, id ASC")
		}).
		Preload("Matches.LocalTeam").
		Preload("Matches.VisitorTeam").
		Where("id = ?", tournamentID).
		First(&tournament).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tournamentModel.ErrTournamentNotFound
		}
		r.logger.Errorw("GetByID database error", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	return &tournament, nil
}

// GetTeams returns the teams of a tournament.
func (r *repository) GetTeams(ctx context.Context, tournamentID int64) ([]tournamentModel.Team, error) {
	var teams []tournamentModel.Team
	err := r.db.WithContext(ctx).
		Where("tournament_id = ?", tournamentID).
		Order("id ASC").
		Find(&teams).Error

	if err != nil {
		r.logger.Errorw("GetTeams database error", "tournament_id", tournamentID, "error", err)
		return nil, err
	}

	if teams == nil {
		return []tournamentModel.Team{}, nil
	}

	return teams, nil
}

// GetMatch finds a match with its teams.
func (r *repository) GetMatch(ctx context.Context, matchID int64) (*tournamentModel.Match, error) {
	var match tournamentModel.Match
	err := r.db.WithContext(ctx).
		Preload("LocalTeam").
		Preload("VisitorTeam").
		Where("id = ?", matchID).
		First(&match).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tournamentModel.ErrMatchNotFound
		}
		r.logger.Errorw("GetMatch database error", "match_id", matchID, "error", err)
		return nil, err
	}

	return &match, nil
}

// GetMatchForUpdate finds a match and locks its row until the transaction ends.
// SQLite has no row locks; the clause is dropped there.
func (r *repository) GetMatchForUpdate(ctx context.Context, matchID int64) (*tournamentModel.Match, error) {
	var match tournamentModel.Match
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", matchID).
		First(&match).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tournamentModel.ErrMatchNotFound
		}
		r.logger.Errorw("GetMatchForUpdate database error", "match_id", matchID, "error", err)
		return nil, err
	}

	return &match, nil
}

// SetResult records the final score and closes the match.
func (r *repository) SetResult(ctx context.Context, matchID int64, goalsLocal, goalsVisitor int) error {
	result := r.db.WithContext(ctx).
		Model(&tournamentModel.Match{}).
		Where("id = ?", matchID).
		Updates(map[string]interface{}{
			"goals_local":   goalsLocal,
			"goals_visitor": goalsVisitor,
			"is_closed":     true,
		})

	if result.Error != nil {
		r.logger.Errorw("SetResult database error", "match_id", matchID, "error", result.Error)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return tournamentModel.ErrMatchNotFound
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
