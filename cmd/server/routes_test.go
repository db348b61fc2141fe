package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/prode/internal/config"
	groupModel "github.com/festy23/prode/internal/group/model"
	predictionModel "github.com/festy23/prode/internal/prediction/model"
	standingsModel "github.com/festy23/prode/internal/standings/model"
	"github.com/festy23/prode/internal/testutil"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
	userModel "github.com/festy23/prode/internal/user/model"
	"github.com/festy23/prode/pkg/clock"
)

type client struct {
	t      *testing.T
	router *gin.Engine
}

func (c client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c client) decode(w *httptest.ResponseRecorder, status int, out interface{}) {
	c.t.Helper()
	require.Equal(c.t, status, w.Code, w.Body.String())
	if out != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out))
	}
}

func newTestClient(t *testing.T, now time.Time, cfg config.Config) client {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	router := newRouter(cfg, db, prometheus.NewRegistry(), clock.Fixed(now), zap.NewNop().Sugar())
	return client{t: t, router: router}
}

func TestRouter_PredictionFlow(t *testing.T) {
	kickoff := time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)
	c := newTestClient(t, kickoff.Add(-24*time.Hour), config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	})

	for _, u := range []string{"alice", "bob"} {
		c.decode(c.do(http.MethodPost, "/users/register", userModel.RegisterUserRequest{UserID: u, Username: u}), http.StatusOK, nil)
	}

	var created struct {
		Tournament tournamentModel.TournamentResponse `json:"tournament"`
	}
	c.decode(c.do(http.MethodPost, "/tournament/add", tournamentModel.AddTournamentRequest{
		Name:  "World Cup",
		Teams: []string{"ARG", "FRA"},
		Matches: []tournamentModel.MatchInput{
			{LocalTeam: "ARG", VisitorTeam: "FRA", ScheduledAt: kickoff},
		},
	}), http.StatusCreated, &created)
	require.Len(t, created.Tournament.Matches, 1)
	matchID := created.Tournament.Matches[0].ID

	var group struct {
		Group groupModel.GroupResponse `json:"group"`
	}
	c.decode(c.do(http.MethodPost, "/groups/create", groupModel.CreateGroupRequest{
		Name: "Office", TournamentID: created.Tournament.ID, AdminUserID: "alice",
	}), http.StatusCreated, &group)
	groupID := group.Group.ID

	c.decode(c.do(http.MethodPost, "/groups/join", groupModel.JoinGroupRequest{
		Code: strings.ToLower(group.Group.Code), UserID: "bob",
	}), http.StatusOK, nil)

	predict := func(user string, gl, gv int) *httptest.ResponseRecorder {
		return c.do(http.MethodPost, "/predictions/update", predictionModel.UpdatePredictionRequest{
			GroupID: groupID, MatchID: matchID, UserID: user, GoalsLocal: &gl, GoalsVisitor: &gv,
		})
	}
	c.decode(predict("alice", 2, 1), http.StatusOK, nil)
	c.decode(predict("bob", 1, 0), http.StatusOK, nil)

	gl, gv := 2, 1
	c.decode(c.do(http.MethodPost, "/matches/result", tournamentModel.RecordResultRequest{
		MatchID: matchID, GoalsLocal: &gl, GoalsVisitor: &gv,
	}), http.StatusOK, nil)

	c.decode(predict("alice", 0, 0), http.StatusConflict, nil)

	var standings standingsModel.GroupStandingsResponse
	c.decode(c.do(http.MethodGet, fmt.Sprintf("/standings/group?group_id=%d", groupID), nil), http.StatusOK, &standings)
	require.Len(t, standings.Standings, 2)
	assert.Equal(t, "alice", standings.Standings[0].UserID)
	assert.Equal(t, 10, standings.Standings[0].Points)
	assert.Equal(t, "bob", standings.Standings[1].UserID)
	assert.Equal(t, 6, standings.Standings[1].Points)

	var mine userModel.GetPredictionsResponse
	c.decode(c.do(http.MethodGet, "/users/predictions?user_id=bob", nil), http.StatusOK, &mine)
	assert.Equal(t, 6, mine.TotalPoints)

	w := c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prode_predictions_scored_total 2")
	assert.Contains(t, w.Body.String(), `route="/matches/result"`)
}

func TestRouter_Health(t *testing.T) {
	c := newTestClient(t, time.Now(), config.Config{})

	c.decode(c.do(http.MethodGet, "/health", nil), http.StatusOK, nil)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/metrics", nil).Code, "metrics disabled")
}

func TestRouter_RateLimitSkipsHealth(t *testing.T) {
	c := newTestClient(t, time.Now(), config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1},
	})

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/users/predictions?user_id=x", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodGet, "/users/predictions?user_id=x", nil).Code)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil).Code)
	}
}
