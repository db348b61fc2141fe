package model

import "errors"

var (
	// ErrGroupNotFound indicates that the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrTournamentNotFound indicates that the referenced tournament does not exist.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyMember indicates that the user is already an active member.
	ErrAlreadyMember = errors.New("user is already a member of the group")
	// ErrNotMember indicates that the user is not an active member.
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrAdminCannotLeave indicates that the group admin tried to leave.
	ErrAdminCannotLeave = errors.New("group admin cannot leave the group")
	// ErrCodeTaken indicates a join code collision.
	ErrCodeTaken = errors.New("join code already in use")
	// ErrInvalidGroupName indicates that the provided group name is empty.
	ErrInvalidGroupName = errors.New("invalid group name")
	// ErrInvalidCode indicates that the provided join code is empty.
	ErrInvalidCode = errors.New("invalid join code")
	// ErrInvalidGroupID indicates that the provided group ID is invalid.
	ErrInvalidGroupID = errors.New("invalid group ID")
	// ErrInvalidUserID indicates that the provided user ID is invalid (empty or too long).
	ErrInvalidUserID = errors.New("user_id must be between 1 and 255 characters")
)
