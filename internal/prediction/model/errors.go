package model

import "errors"

var (
	// ErrPredictionNotFound indicates that the requested prediction does not exist.
	ErrPredictionNotFound = errors.New("prediction not found")
	// ErrMatchNotFound indicates that the referenced match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrGroupNotFound indicates that the referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrTournamentNotFound indicates that the referenced tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrMatchResultMissing indicates that a match cannot be closed without both final goals.
	ErrMatchResultMissing = errors.New("match result is not recorded")
	// ErrPredictionLocked indicates that the match is about to start, has started or is closed.
	ErrPredictionLocked = errors.New("prediction can no longer be edited")
	// ErrNotGroupMember indicates that the viewer is not an active member of the group.
	ErrNotGroupMember = errors.New("user is not a member of the group")
	// ErrInvalidGoals indicates that predicted goals are missing or negative.
	ErrInvalidGoals = errors.New("goals must be non-negative integers")
	// ErrInvalidPredictionID indicates that the provided prediction ID is invalid.
	ErrInvalidPredictionID = errors.New("invalid prediction ID")
	// ErrInvalidGroupID indicates that the provided group ID is invalid.
	ErrInvalidGroupID = errors.New("invalid group ID")
	// ErrInvalidMatchID indicates that the provided match ID is invalid.
	ErrInvalidMatchID = errors.New("invalid match ID")
	// ErrInvalidUserID indicates that the provided user ID is invalid (empty or too long).
	ErrInvalidUserID = errors.New("user_id must be between 1 and 255 characters")
)
