package model

import "errors"

var (
	// ErrGroupNotFound indicates that the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrInvalidGroupID indicates that the group ID is not positive.
	ErrInvalidGroupID = errors.New("invalid group ID")
)
