// Package model provides domain models and DTOs for the group module.
package model

import "time"

// CreateGroupRequest creates a group following a tournament; the admin becomes its first member.
type CreateGroupRequest struct {
	Name         string `json:"name"          binding:"required"`
	TournamentID int64  `json:"tournament_id" binding:"required"`
	AdminUserID  string `json:"admin_user_id" binding:"required"`
}

// JoinGroupRequest joins a group by its join code.
type JoinGroupRequest struct {
	Code   string `json:"code"    binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

// LeaveGroupRequest deactivates a membership.
type LeaveGroupRequest struct {
	GroupID int64  `json:"group_id" binding:"required"`
	UserID  string `json:"user_id"  binding:"required"`
}

// MemberResponse represents a group member in API responses.
type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupResponse represents a group with its members.
type GroupResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Code         string           `json:"code"`
	TournamentID int64            `json:"tournament_id"`
	AdminUserID  string           `json:"admin_user_id"`
	Members      []MemberResponse `json:"members"`
}
