package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	groupModel "github.com/festy23/prode/internal/group/model"
	"github.com/festy23/prode/internal/group/repository"
	predictionModel "github.com/festy23/prode/internal/prediction/model"
	predictionRepository "github.com/festy23/prode/internal/prediction/repository"
	predictionService "github.com/festy23/prode/internal/prediction/service"
	"github.com/festy23/prode/internal/testutil"
	"github.com/festy23/prode/pkg/clock"
)

type mockSynchronizer struct {
	mock.Mock
}

func (m *mockSynchronizer) SynchronizeGroupPredictions(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *mockSynchronizer) SynchronizeTournament(ctx context.Context, tournamentID int64) error {
	args := m.Called(ctx, tournamentID)
	return args.Error(0)
}

var _ predictionService.Synchronizer = (*mockSynchronizer)(nil)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(db *gorm.DB, sync predictionService.Synchronizer) *service {
	logger := zap.NewNop().Sugar()
	if sync == nil {
		sync = predictionService.New(predictionRepository.New(db, logger), clock.Fixed(now), nil, logger)
	}
	return New(repository.New(db, logger), db, sync, clock.Fixed(now), logger).(*service)
}

func countPredictions(t *testing.T, db *gorm.DB, groupID int64, userID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&predictionModel.Prediction{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error)
	return count
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		assert.Len(t, code, CodeLength)
		assert.Regexp(t, "^[0-9A-F]+$", code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 95)
}

func TestService_CreateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("admin joins and gets predictions", func(t *testing.T) {
		db := testutil.NewDB(t)
		fx := testutil.NewFixtures(t, db)
		svc := newTestService(db, nil)

		admin := fx.User()
		tournament := fx.Tournament(2)
		fx.Match(tournament, now.Add(24*time.Hour))
		fx.Match(tournament, now.Add(48*time.Hour))

		resp, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
			Name: "  Oficina  ", TournamentID: tournament.ID, AdminUserID: admin.UserID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Oficina", resp.Name)
		assert.Len(t, resp.Code, CodeLength)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, admin.UserID, resp.Members[0].UserID)
		assert.Equal(t, admin.Username, resp.Members[0].Username)
		assert.Equal(t, int64(2), countPredictions(t, db, resp.ID, admin.UserID))
	})

	t.Run("retries code collision", func(t *testing.T) {
		db := testutil.NewDB(t)
		fx := testutil.NewFixtures(t, db)
		svc := newTestService(db, nil)

		admin := fx.User()
		tournament := fx.Tournament(2)

		codes := []string{"AAAA0001", "AAAA0001", "BBBB0002"}
		svc.newCode = func() string {
			code := codes[0]
			codes = codes[1:]
			return code
		}

		first, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
			Name: "one", TournamentID: tournament.ID, AdminUserID: admin.UserID,
		})
		require.NoError(t, err)
		second, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
			Name: "two", TournamentID: tournament.ID, AdminUserID: admin.UserID,
		})
		require.NoError(t, err)

		assert.Equal(t, "AAAA0001", first.Code)
		assert.Equal(t, "BBBB0002", second.Code)
		assert.Len(t, second.Members, 1)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		db := testutil.NewDB(t)
		fx := testutil.NewFixtures(t, db)
		svc := newTestService(db, nil)

		_, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
			Name: "g", TournamentID: 404, AdminUserID: fx.User().UserID,
		})
		assert.ErrorIs(t, err, groupModel.ErrTournamentNotFound)
	})

	t.Run("unknown admin", func(t *testing.T) {
		db := testutil.NewDB(t)
		fx := testutil.NewFixtures(t, db)
		svc := newTestService(db, nil)

		_, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
			Name: "g", TournamentID: fx.Tournament(2).ID, AdminUserID: "ghost",
		})
		assert.ErrorIs(t, err, groupModel.ErrUserNotFound)
	})

	t.Run("synchronization failure does not fail creation", func(t *testing.T) {
		db := testutil.NewDB(t)
		fx := testutil.NewFixtures(t, db)
		sync := new(mockSynchronizer)
		sync.On("SynchronizeGroupPredictions", mock.Anything, mock.Anything).Return(errors.New("db down"))
		svc := newTestService(db, sync)

		resp, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
			Name: "g", TournamentID: fx.Tournament(2).ID, AdminUserID: fx.User().UserID,
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		sync.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestService(testutil.NewDB(t), new(mockSynchronizer))

		_, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{Name: " ", TournamentID: 1, AdminUserID: "u"})
		assert.ErrorIs(t, err, groupModel.ErrInvalidGroupName)

		_, err = svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{Name: "g", TournamentID: 1})
		assert.ErrorIs(t, err, groupModel.ErrInvalidUserID)
	})
}

func TestService_JoinAndLeave(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	svc := newTestService(db, nil)

	admin := fx.User()
	friend := fx.User()
	tournament := fx.Tournament(2)
	fx.Match(tournament, now.Add(24*time.Hour))

	group, err := svc.CreateGroup(ctx, &groupModel.CreateGroupRequest{
		Name: "g", TournamentID: tournament.ID, AdminUserID: admin.UserID,
	})
	require.NoError(t, err)

	joined, err := svc.JoinGroup(ctx, &groupModel.JoinGroupRequest{Code: " " + group.Code + " ", UserID: friend.UserID})
	require.NoError(t, err)
	assert.Len(t, joined.Members, 2)
	assert.Equal(t, int64(1), countPredictions(t, db, group.ID, friend.UserID))

	_, err = svc.JoinGroup(ctx, &groupModel.JoinGroupRequest{Code: group.Code, UserID: friend.UserID})
	assert.ErrorIs(t, err, groupModel.ErrAlreadyMember)

	_, err = svc.LeaveGroup(ctx, &groupModel.LeaveGroupRequest{GroupID: group.ID, UserID: admin.UserID})
	assert.ErrorIs(t, err, groupModel.ErrAdminCannotLeave)

	left, err := svc.LeaveGroup(ctx, &groupModel.LeaveGroupRequest{GroupID: group.ID, UserID: friend.UserID})
	require.NoError(t, err)
	for _, m := range left.Members {
		assert.Equal(t, m.UserID == admin.UserID, m.IsActive)
	}
	assert.Equal(t, int64(1), countPredictions(t, db, group.ID, friend.UserID))

	_, err = svc.LeaveGroup(ctx, &groupModel.LeaveGroupRequest{GroupID: group.ID, UserID: friend.UserID})
	assert.ErrorIs(t, err, groupModel.ErrNotMember)

	rejoined, err := svc.JoinGroup(ctx, &groupModel.JoinGroupRequest{Code: group.Code, UserID: friend.UserID})
	require.NoError(t, err)
	active := 0
	for _, m := range rejoined.Members {
		if m.IsActive {
			active++
		}
	}
	assert.Equal(t, 2, active)
	assert.Len(t, rejoined.Members, 2)

	_, err = svc.JoinGroup(ctx, &groupModel.JoinGroupRequest{Code: "NOPE0000", UserID: friend.UserID})
	assert.ErrorIs(t, err, groupModel.ErrGroupNotFound)

	_, err = svc.GetGroup(ctx, 404)
	assert.ErrorIs(t, err, groupModel.ErrGroupNotFound)
}
