// Package testutil provides an in-memory database and seeded fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	groupModel "github.com/festy23/prode/internal/group/model"
	predictionModel "github.com/festy23/prode/internal/prediction/model"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
	userModel "github.com/festy23/prode/internal/user/model"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", gofakeit.UUID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&userModel.User{},
		&tournamentModel.Tournament{},
		&tournamentModel.Team{},
		&tournamentModel.Match{},
		&groupModel.Group{},
		&groupModel.GroupMember{},
		&predictionModel.Prediction{},
	)
	require.NoError(t, err)

	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// Fixtures creates rows with generated attributes.
type Fixtures struct {
	t     *testing.T
	db    *gorm.DB
	faker *gofakeit.Faker
	seq   int
}

// NewFixtures creates a fixture builder; an explicit seed makes names reproducible.
func NewFixtures(t *testing.T, db *gorm.DB, seed ...uint64) *Fixtures {
	var s uint64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = uint64(time.Now().UnixNano())
	}
	return &Fixtures{t: t, db: db, faker: gofakeit.New(s)}
}

func (f *Fixtures) next() int {
	f.seq++
	return f.seq
}

// User inserts an active user.
func (f *Fixtures) User() *userModel.User {
	f.t.Helper()

	n := f.next()
	email := f.faker.Email()
	user := &userModel.User{
		UserID:   fmt.Sprintf("u%d-%s", n, f.faker.LetterN(6)),
		Username: f.faker.Username(),
		Email:    &email,
		IsActive: true,
	}
	require.NoError(f.t, f.db.Create(user).Error)
	return user
}

// Tournament inserts a tournament with the given number of teams.
func (f *Fixtures) Tournament(teams int) *tournamentModel.Tournament {
	f.t.Helper()

	tournament := &tournamentModel.Tournament{
		Name:     fmt.Sprintf("%s Cup %d", f.faker.Country(), f.next()),
		IsActive: true,
	}
	require.NoError(f.t, f.db.Create(tournament).Error)

	for i := 0; i < teams; i++ {
		team := tournamentModel.Team{
			TournamentID: tournament.ID,
			Name:         fmt.Sprintf("%s %d", f.faker.City(), f.next()),
		}
		require.NoError(f.t, f.db.Create(&team).Error)
		tournament.Teams = append(tournament.Teams, team)
	}

	return tournament
}

// Match inserts a match between the first two teams of the tournament.
func (f *Fixtures) Match(tournament *tournamentModel.Tournament, scheduledAt time.Time) *tournamentModel.Match {
	f.t.Helper()
	require.GreaterOrEqual(f.t, len(tournament.Teams), 2, "tournament needs two teams")

	match := &tournamentModel.Match{
		TournamentID:  tournament.ID,
		LocalTeamID:   tournament.Teams[0].ID,
		VisitorTeamID: tournament.Teams[1].ID,
		IsActive:      true,
		ScheduledAt:   scheduledAt.UTC(),
	}
	require.NoError(f.t, f.db.Create(match).Error)
	tournament.Matches = append(tournament.Matches, *match)
	return match
}

// Group inserts a group administered by admin with the given members, admin included.
func (f *Fixtures) Group(
	tournament *tournamentModel.Tournament,
	admin *userModel.User,
	members ...*userModel.User,
) *groupModel.Group {
	f.t.Helper()

	group := &groupModel.Group{
		Name:         f.faker.Company(),
		Code:         fmt.Sprintf("%s%d", f.faker.LetterN(4), f.next()),
		TournamentID: tournament.ID,
		AdminUserID:  admin.UserID,
	}
	require.NoError(f.t, f.db.Create(group).Error)

	for _, u := range append([]*userModel.User{admin}, members...) {
		f.Member(group, u, true)
	}
	return group
}

// Member inserts a membership.
func (f *Fixtures) Member(group *groupModel.Group, user *userModel.User, active bool) *groupModel.GroupMember {
	f.t.Helper()

	member := &groupModel.GroupMember{
		GroupID:  group.ID,
		UserID:   user.UserID,
		IsActive: true,
		JoinedAt: time.Now().UTC(),
	}
	require.NoError(f.t, f.db.Create(member).Error)
	if !active {
		// is_active has a database default, so false must be written explicitly.
		require.NoError(f.t, f.db.Model(member).Update("is_active", false).Error)
		member.IsActive = false
	}
	group.Members = append(group.Members, *member)
	return member
}

// Prediction inserts a prediction; nil goals leave it as a placeholder.
func (f *Fixtures) Prediction(
	group *groupModel.Group,
	match *tournamentModel.Match,
	user *userModel.User,
	goalsLocal, goalsVisitor *int,
) *predictionModel.Prediction {
	f.t.Helper()

	prediction := &predictionModel.Prediction{
		GroupID:      group.ID,
		MatchID:      match.ID,
		TournamentID: match.TournamentID,
		UserID:       user.UserID,
		GoalsLocal:   goalsLocal,
		GoalsVisitor: goalsVisitor,
	}
	require.NoError(f.t, f.db.Create(prediction).Error)
	return prediction
}

// Score sets the points of a prediction.
func (f *Fixtures) Score(prediction *predictionModel.Prediction, points int) {
	f.t.Helper()

	require.NoError(f.t, f.db.Model(prediction).Update("points", points).Error)
	prediction.Points = &points
}

// Result records the final score of a match.
func (f *Fixtures) Result(match *tournamentModel.Match, goalsLocal, goalsVisitor int) {
	f.t.Helper()

	require.NoError(f.t, f.db.Model(match).Updates(map[string]interface{}{
		"goals_local":   goalsLocal,
		"goals_visitor": goalsVisitor,
	}).Error)
	match.GoalsLocal = &goalsLocal
	match.GoalsVisitor = &goalsVisitor
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
