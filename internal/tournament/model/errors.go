package model

import "errors"

var (
	// ErrTournamentExists indicates that a tournament with the given name already exists.
	ErrTournamentExists = errors.New("tournament already exists")
	// ErrTournamentNotFound indicates that the requested tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrMatchNotFound indicates that the requested match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchNotPlayed indicates that the match has no recorded result yet.
	ErrMatchNotPlayed = errors.New("match has not been played")
	// ErrUnknownTeam indicates that a match references a team outside the tournament.
	ErrUnknownTeam = errors.New("team does not belong to the tournament")
	// ErrSameTeam indicates that a match pits a team against itself.
	ErrSameTeam = errors.New("local and visitor teams must differ")
	// ErrDuplicateTeam indicates that a team name is listed twice.
	ErrDuplicateTeam = errors.New("duplicate team name")
	// ErrInvalidTournamentName indicates that the provided tournament name is empty.
	ErrInvalidTournamentName = errors.New("invalid tournament name")
	// ErrInvalidTournamentID indicates that the provided tournament ID is invalid.
	ErrInvalidTournamentID = errors.New("invalid tournament ID")
	// ErrInvalidMatchID indicates that the provided match ID is invalid.
	ErrInvalidMatchID = errors.New("invalid match ID")
	// ErrInvalidGoals indicates that goals are missing or negative.
	ErrInvalidGoals = errors.New("goals must be non-negative integers")
	// ErrTooFewTeams indicates that a tournament needs at least two teams.
	ErrTooFewTeams = errors.New("a tournament needs at least two teams")
)
