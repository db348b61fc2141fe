// Package service provides business logic layer for group module.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	groupModel "github.com/festy23/prode/internal/group/model"
	"github.com/festy23/prode/internal/group/repository"
	predictionService "github.com/festy23/prode/internal/prediction/service"
	"github.com/festy23/prode/pkg/clock"
)

// CodeLength is the number of characters in a join code.
const CodeLength = 8

const maxCodeAttempts = 5

// Service defines the interface for group business logic operations.
type Service interface {
	// CreateGroup creates a group with a fresh join code; the admin becomes its first member.
	CreateGroup(ctx context.Context, req *groupModel.CreateGroupRequest) (*groupModel.GroupResponse, error)

	// JoinGroup adds the user to the group owning the code, reactivating a former membership.
	JoinGroup(ctx context.Context, req *groupModel.JoinGroupRequest) (*groupModel.GroupResponse, error)

	// GetGroup returns a group with its members.
	GetGroup(ctx context.Context, groupID int64) (*groupModel.GroupResponse, error)

	// LeaveGroup deactivates the user's membership. Existing predictions are kept.
	LeaveGroup(ctx context.Context, req *groupModel.LeaveGroupRequest) (*groupModel.GroupResponse, error)
}

type service struct {
	repo    repository.Repository
	db      *gorm.DB
	sync    predictionService.Synchronizer
	clock   clock.Clock
	newCode func() string
	logger  *zap.SugaredLogger
}

// New creates a new group service instance.
func New(
	repo repository.Repository,
	db *gorm.DB,
	sync predictionService.Synchronizer,
	clk clock.Clock,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		db:      db,
		sync:    sync,
		clock:   clk,
		newCode: GenerateCode,
		logger:  logger,
	}
}

// GenerateCode returns a random upper-case join code derived from a UUID.
func GenerateCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:CodeLength])
}

// CreateGroup creates a group and its admin membership in a transaction, then synchronizes it.
func (s *service) CreateGroup(
	ctx context.Context,
	req *groupModel.CreateGroupRequest,
) (*groupModel.GroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, groupModel.ErrInvalidGroupName
	}
	if err := validateUserID(req.AdminUserID); err != nil {
		return nil, err
	}

	var groupID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		ok, err := txRepo.TournamentExists(ctx, req.TournamentID)
		if err != nil {
			return err
		}
		if !ok {
			return groupModel.ErrTournamentNotFound
		}

		ok, err = txRepo.UserExists(ctx, req.AdminUserID)
		if err != nil {
			return err
		}
		if !ok {
			return groupModel.ErrUserNotFound
		}

		group, err := s.createWithFreshCode(ctx, tx, name, req)
		if err != nil {
			return err
		}
		groupID = group.ID

		return txRepo.AddMember(ctx, &groupModel.GroupMember{
			GroupID:  group.ID,
			UserID:   req.AdminUserID,
			IsActive: true,
			JoinedAt: s.clock.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("CreateGroup completed",
		"group_id", groupID, "tournament_id", req.TournamentID, "admin_user_id", req.AdminUserID)
	s.synchronize(ctx, groupID)
	return s.GetGroup(ctx, groupID)
}

// createWithFreshCode inserts the group, drawing a new code on collision.
// Each attempt runs in a savepoint so a collision does not abort the outer transaction.
func (s *service) createWithFreshCode(
	ctx context.Context,
	tx *gorm.DB,
	name string,
	req *groupModel.CreateGroupRequest,
) (*groupModel.Group, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		group := &groupModel.Group{
			Name:         name,
			Code:         s.newCode(),
			TournamentID: req.TournamentID,
			AdminUserID:  req.AdminUserID,
		}
		err := tx.Transaction(func(sp *gorm.DB) error {
			return repository.New(sp, s.logger).Create(ctx, group)
		})
		if err == nil {
			return group, nil
		}
		if !errors.Is(err, groupModel.ErrCodeTaken) {
			return nil, err
		}
		s.logger.Debugw("CreateGroup join code collision", "attempt", attempt+1)
	}
	return nil, groupModel.ErrCodeTaken
}

// JoinGroup adds the user to the group owning the code, then synchronizes the group.
func (s *service) JoinGroup(
	ctx context.Context,
	req *groupModel.JoinGroupRequest,
) (*groupModel.GroupResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, groupModel.ErrInvalidCode
	}
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}

	var groupID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		group, err := txRepo.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		groupID = group.ID

		ok, err := txRepo.UserExists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return groupModel.ErrUserNotFound
		}

		member, err := txRepo.GetMember(ctx, group.ID, req.UserID)
		switch {
		case err == nil && member.IsActive:
			return groupModel.ErrAlreadyMember
		case err == nil:
			return txRepo.SetMemberActive(ctx, group.ID, req.UserID, true)
		case errors.Is(err, groupModel.ErrNotMember):
			return txRepo.AddMember(ctx, &groupModel.GroupMember{
				GroupID:  group.ID,
				UserID:   req.UserID,
				IsActive: true,
				JoinedAt: s.clock.Now(),
			})
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("JoinGroup completed", "group_id", groupID, "user_id", req.UserID)
	s.synchronize(ctx, groupID)
	return s.GetGroup(ctx, groupID)
}

// GetGroup returns a group with its members.
func (s *service) GetGroup(ctx context.Context, groupID int64) (*groupModel.GroupResponse, error) {
	if groupID <= 0 {
		return nil, groupModel.ErrInvalidGroupID
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return toGroupResponse(group), nil
}

// LeaveGroup deactivates the user's membership.
func (s *service) LeaveGroup(
	ctx context.Context,
	req *groupModel.LeaveGroupRequest,
) (*groupModel.GroupResponse, error) {
	if req.GroupID <= 0 {
		return nil, groupModel.ErrInvalidGroupID
	}
	if err := validateUserID(req.UserID); err != nil {
		return nil, err
	}

	group, err := s.repo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if group.AdminUserID == req.UserID {
		return nil, groupModel.ErrAdminCannotLeave
	}

	member, err := s.repo.GetMember(ctx, req.GroupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, groupModel.ErrNotMember
	}

	if err := s.repo.SetMemberActive(ctx, req.GroupID, req.UserID, false); err != nil {
		return nil, err
	}

	s.logger.Infow("LeaveGroup completed", "group_id", req.GroupID, "user_id", req.UserID)
	return s.GetGroup(ctx, req.GroupID)
}

// synchronize materializes the group's predictions; failures are logged and retried by the next sync.
func (s *service) synchronize(ctx context.Context, groupID int64) {
	if err := s.sync.SynchronizeGroupPredictions(ctx, groupID); err != nil {
		s.logger.Warnw("group synchronization failed", "group_id", groupID, "error", err)
	}
}

func toGroupResponse(g *groupModel.Group) *groupModel.GroupResponse {
	resp := &groupModel.GroupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Code:         g.Code,
		TournamentID: g.TournamentID,
		AdminUserID:  g.AdminUserID,
		Members:      make([]groupModel.MemberResponse, 0, len(g.Members)),
	}
	for _, m := range g.Members {
		member := groupModel.MemberResponse{
			UserID:   m.UserID,
			IsActive: m.IsActive,
			JoinedAt: m.JoinedAt,
		}
		if m.User != nil {
			member.Username = m.User.Username
		}
		resp.Members = append(resp.Members, member)
	}
	return resp
}

func validateUserID(userID string) error {
	if len(userID) == 0 || len(userID) > 255 {
		return groupModel.ErrInvalidUserID
	}
	return nil
}
