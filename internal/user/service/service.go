// Package service provides business logic layer for user module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/festy23/prode/internal/user/model"
	"github.com/festy23/prode/internal/user/repository"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// Register creates a user or refreshes its profile.
	Register(ctx context.Context, req *model.RegisterUserRequest) (*model.UserResponse, error)

	// SetIsActive updates user activity status.
	SetIsActive(ctx context.Context, req *model.SetIsActiveRequest) (*model.UserResponse, error)

	// GetPredictions returns the user's predictions across groups.
	GetPredictions(ctx context.Context, userID string) (*model.GetPredictionsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, logger: logger}
}

// Register creates a user or refreshes its profile.
func (s *service) Register(ctx context.Context, req *model.RegisterUserRequest) (*model.UserResponse, error) {
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, model.ErrInvalidUsername
	}

	user, err := s.repo.Upsert(ctx, &model.User{
		UserID:   req.UserID,
		Username: username,
		Email:    req.Email,
		IsActive: true,
	})
	if err != nil {
		s.logger.Errorw("Register failed", "user_id", req.UserID, "error", err)
		return nil, err
	}

	s.logger.Infow("Register completed", "user_id", user.UserID)
	return &model.UserResponse{User: *user}, nil
}

// SetIsActive updates user activity status.
// Inactive users keep their memberships but receive no new predictions.
func (s *service) SetIsActive(ctx context.Context, req *model.SetIsActiveRequest) (*model.UserResponse, error) {
	s.logger.Debugw("SetIsActive called", "user_id", req.UserID)

	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}
	if req.IsActive == nil {
		return nil, model.ErrInvalidIsActive
	}

	user, err := s.repo.UpdateIsActive(ctx, req.UserID, *req.IsActive)
	if err != nil {
		s.logger.Errorw("SetIsActive failed", "user_id", req.UserID, "is_active", *req.IsActive, "error", err)
		return nil, err
	}

	s.logger.Infow("SetIsActive completed", "user_id", req.UserID, "new_state", *req.IsActive)
	return &model.UserResponse{User: *user}, nil
}

// GetPredictions returns the user's predictions across groups.
// An unknown user gets an empty list rather than an error.
func (s *service) GetPredictions(ctx context.Context, userID string) (*model.GetPredictionsResponse, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	predictions, err := s.repo.GetPredictions(ctx, userID)
	if err != nil {
		s.logger.Errorw("GetPredictions failed", "user_id", userID, "error", err)
		return nil, err
	}

	total := 0
	for _, p := range predictions {
		if p.Points != nil {
			total += *p.Points
		}
	}

	return &model.GetPredictionsResponse{
		UserID:      userID,
		TotalPoints: total,
		Predictions: predictions,
	}, nil
}

func validateUserID(userID string) error {
	if len(userID) == 0 || len(userID) > 255 {
		return model.ErrInvalidUserID
	}
	return nil
}
