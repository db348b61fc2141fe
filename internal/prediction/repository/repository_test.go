package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	predictionModel "github.com/festy23/prode/internal/prediction/model"
	"github.com/festy23/prode/internal/testutil"
)

var kickoff = time.Date(2026, 6, 14, 18, 0, 0, 0, time.UTC)

func TestRepository_GetMatchByID(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	tournament := fx.Tournament(2)
	match := fx.Match(tournament, kickoff)

	t.Run("success", func(t *testing.T) {
		got, err := repo.GetMatchByID(ctx, match.ID)
		require.NoError(t, err)
		assert.Equal(t, tournament.ID, got.TournamentID)
		require.NotNil(t, got.LocalTeam)
		require.NotNil(t, got.VisitorTeam)
		assert.Equal(t, tournament.Teams[0].Name, got.LocalTeam.Name)
		assert.False(t, got.HasResult())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetMatchByID(ctx, 9999)
		assert.ErrorIs(t, err, predictionModel.ErrMatchNotFound)
	})
}

func TestRepository_GetGroupWithMembers(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	admin := fx.User()
	left := fx.User()
	tournament := fx.Tournament(2)
	group := fx.Group(tournament, admin)
	fx.Member(group, left, false)

	t.Run("loads members", func(t *testing.T) {
		got, err := repo.GetGroupWithMembers(ctx, group.ID)
		require.NoError(t, err)
		require.Len(t, got.Members, 2)
		assert.Equal(t, []string{admin.UserID}, got.ActiveMemberIDs())
		require.NotNil(t, got.Members[0].User)
		assert.Equal(t, admin.Username, got.Members[0].User.Username)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetGroupWithMembers(ctx, 9999)
		assert.ErrorIs(t, err, predictionModel.ErrGroupNotFound)
	})
}

func TestRepository_GetTournamentWithMatches(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	tournament := fx.Tournament(2)
	late := fx.Match(tournament, kickoff.Add(48*time.Hour))
	early := fx.Match(tournament, kickoff)

	got, err := repo.GetTournamentWithMatches(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, early.ID, got.Matches[0].ID)
	assert.Equal(t, late.ID, got.Matches[1].ID)

	_, err = repo.GetTournamentWithMatches(ctx, 9999)
	assert.ErrorIs(t, err, predictionModel.ErrTournamentNotFound)
}

func TestRepository_GetGroupIDsByTournament(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	admin := fx.User()
	followed := fx.Tournament(2)
	other := fx.Tournament(2)
	g1 := fx.Group(followed, admin)
	g2 := fx.Group(followed, admin)
	fx.Group(other, admin)

	ids, err := repo.GetGroupIDsByTournament(ctx, followed.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{g1.ID, g2.ID}, ids)

	ids, err = repo.GetGroupIDsByTournament(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRepository_CreatePredictions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	user := fx.User()
	tournament := fx.Tournament(2)
	match := fx.Match(tournament, kickoff)
	group := fx.Group(tournament, user)

	slot := predictionModel.Prediction{
		GroupID: group.ID, MatchID: match.ID, TournamentID: tournament.ID, UserID: user.UserID,
	}

	t.Run("empty batch", func(t *testing.T) {
		n, err := repo.CreatePredictions(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("inserts once", func(t *testing.T) {
		n, err := repo.CreatePredictions(ctx, []predictionModel.Prediction{slot})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.CreatePredictions(ctx, []predictionModel.Prediction{slot})
		require.NoError(t, err)
		assert.Zero(t, n)

		keys, err := repo.GetGroupPredictionKeys(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, map[predictionModel.Key]struct{}{slot.Key(): {}}, keys)
	})
}

func TestRepository_CreatePredictions_LargeGroup(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	const members, matches = 40, 104

	tournament := fx.Tournament(2)
	admin := fx.User()
	group := fx.Group(tournament, admin)
	users := []string{admin.UserID}
	for len(users) < members {
		u := fx.User()
		fx.Member(group, u, true)
		users = append(users, u.UserID)
	}

	slots := make([]predictionModel.Prediction, 0, members*matches)
	for i := 0; i < matches; i++ {
		match := fx.Match(tournament, kickoff.Add(time.Duration(i)*time.Hour))
		for _, userID := range users {
			slots = append(slots, predictionModel.Prediction{
				GroupID: group.ID, MatchID: match.ID, TournamentID: tournament.ID, UserID: userID,
			})
		}
	}
	require.Greater(t, len(slots), CreateBatchSize*8)

	n, err := repo.CreatePredictions(ctx, slots)
	require.NoError(t, err)
	assert.Equal(t, int64(members*matches), n)

	keys, err := repo.GetGroupPredictionKeys(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, keys, members*matches)

	n, err = repo.CreatePredictions(ctx, slots)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_UpdatePoints(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	user := fx.User()
	tournament := fx.Tournament(2)
	match := fx.Match(tournament, kickoff)
	group := fx.Group(tournament, user)
	p := fx.Prediction(group, match, user, testutil.IntPtr(1), testutil.IntPtr(0))

	t.Run("stores points", func(t *testing.T) {
		err := repo.UpdatePoints(ctx, []predictionModel.Prediction{{ID: p.ID, Points: testutil.IntPtr(6)}})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Points)
		assert.Equal(t, 6, *got.Points)
	})

	t.Run("all or nothing", func(t *testing.T) {
		err := repo.UpdatePoints(ctx, []predictionModel.Prediction{
			{ID: p.ID, Points: testutil.IntPtr(10)},
			{ID: 9999, Points: testutil.IntPtr(10)},
		})
		assert.ErrorIs(t, err, predictionModel.ErrPredictionNotFound)

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, *got.Points)
	})
}

func TestRepository_Goals(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	owner := fx.User()
	friend := fx.User()
	outsider := fx.User()
	tournament := fx.Tournament(2)
	match := fx.Match(tournament, kickoff)
	group := fx.Group(tournament, owner, friend)
	p := fx.Prediction(group, match, owner, nil, nil)
	fx.Prediction(group, match, friend, nil, nil)

	require.NoError(t, repo.UpdateGoals(ctx, p.ID, 2, 2))
	assert.ErrorIs(t, repo.UpdateGoals(ctx, 9999, 1, 1), predictionModel.ErrPredictionNotFound)

	got, err := repo.GetByKey(ctx, p.Key())
	require.NoError(t, err)
	assert.True(t, got.IsSubmitted())
	require.NotNil(t, got.Match)
	assert.Equal(t, match.ID, got.Match.ID)

	_, err = repo.GetByKey(ctx, predictionModel.Key{GroupID: group.ID, MatchID: match.ID, UserID: outsider.UserID})
	assert.ErrorIs(t, err, predictionModel.ErrPredictionNotFound)

	all, err := repo.GetByGroupMatch(ctx, group.ID, match.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byMatch, err := repo.GetPredictionsByMatch(ctx, match.ID)
	require.NoError(t, err)
	assert.Len(t, byMatch, 2)

	ok, err := repo.IsActiveMember(ctx, group.ID, friend.UserID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsActiveMember(ctx, group.ID, outsider.UserID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_UpdateGoals_MatchNoLongerOpen(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	fx := testutil.NewFixtures(t, db)
	repo := New(db, zap.NewNop().Sugar())

	owner := fx.User()
	tournament := fx.Tournament(2)
	group := fx.Group(tournament, owner)

	t.Run("result recorded", func(t *testing.T) {
		match := fx.Match(tournament, kickoff)
		p := fx.Prediction(group, match, owner, testutil.IntPtr(1), testutil.IntPtr(0))
		fx.Result(match, 3, 1)

		err := repo.UpdateGoals(ctx, p.ID, 3, 1)
		assert.ErrorIs(t, err, predictionModel.ErrPredictionLocked)

		got, err := repo.GetByKey(ctx, p.Key())
		require.NoError(t, err)
		assert.Equal(t, 1, *got.GoalsLocal)
		assert.Equal(t, 0, *got.GoalsVisitor)
	})

	t.Run("already scored", func(t *testing.T) {
		match := fx.Match(tournament, kickoff.Add(24*time.Hour))
		p := fx.Prediction(group, match, owner, testutil.IntPtr(2), testutil.IntPtr(2))
		fx.Score(p, 0)

		assert.ErrorIs(t, repo.UpdateGoals(ctx, p.ID, 0, 0), predictionModel.ErrPredictionLocked)
	})

	t.Run("closed without goals", func(t *testing.T) {
		match := fx.Match(tournament, kickoff.Add(48*time.Hour))
		p := fx.Prediction(group, match, owner, nil, nil)
		require.NoError(t, db.Model(match).Update("is_closed", true).Error)

		assert.ErrorIs(t, repo.UpdateGoals(ctx, p.ID, 1, 1), predictionModel.ErrPredictionLocked)
	})
}
