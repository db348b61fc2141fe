package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	predictionModel "github.com/festy23/prode/internal/prediction/model"
	"github.com/festy23/prode/internal/prediction/service"
	tournamentModel "github.com/festy23/prode/internal/tournament/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CloseMatch(ctx context.Context, match *tournamentModel.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *mockService) ScoreMatch(ctx context.Context, match *tournamentModel.Match) (int, error) {
	args := m.Called(ctx, match)
	return args.Int(0), args.Error(1)
}

func (m *mockService) SynchronizeGroupPredictions(ctx context.Context, groupID int64) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *mockService) SynchronizeTournament(ctx context.Context, tournamentID int64) error {
	args := m.Called(ctx, tournamentID)
	return args.Error(0)
}

func (m *mockService) GetPrediction(
	ctx context.Context,
	predictionID int64,
	viewerID string,
) (*predictionModel.PredictionResponse, error) {
	args := m.Called(ctx, predictionID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*predictionModel.PredictionResponse), args.Error(1)
}

func (m *mockService) UpdatePrediction(
	ctx context.Context,
	req *predictionModel.UpdatePredictionRequest,
) (*predictionModel.PredictionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*predictionModel.PredictionResponse), args.Error(1)
}

func (m *mockService) GetMatchPredictions(
	ctx context.Context,
	groupID, matchID int64,
	viewerID string,
) (*predictionModel.MatchPredictionsResponse, error) {
	args := m.Called(ctx, groupID, matchID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*predictionModel.MatchPredictionsResponse), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := New(svc, zap.NewNop().Sugar())
	router.GET("/predictions/get", h.GetPrediction)
	router.POST("/predictions/update", h.UpdatePrediction)
	router.GET("/predictions/match", h.GetMatchPredictions)
	router.POST("/predictions/sync", h.SyncGroup)
	return router
}

func intPtr(v int) *int {
	return &v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_GetPrediction(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)

		mockSvc.On("GetPrediction", mock.Anything, int64(5), "u2").
			Return(&predictionModel.PredictionResponse{ID: 5, UserID: "u1", Hidden: true}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/get?id=5&viewer_id=u2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]predictionModel.PredictionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body["prediction"].Hidden)
		assert.Nil(t, body["prediction"].GoalsLocal)
	})

	t.Run("bad id", func(t *testing.T) {
		router := setupRouter(new(mockService))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/get?id=abc&viewer_id=u2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Error.Code)
	})

	t.Run("not a member", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("GetPrediction", mock.Anything, int64(5), "x").Return(nil, predictionModel.ErrNotGroupMember)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/get?id=5&viewer_id=x", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "NOT_MEMBER", decodeError(t, w).Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("GetPrediction", mock.Anything, int64(5), "u1").Return(nil, predictionModel.ErrPredictionNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/get?id=5&viewer_id=u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error.Code)
	})
}

func TestHandler_UpdatePrediction(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)

		mockSvc.On("UpdatePrediction", mock.Anything, mock.MatchedBy(func(r *predictionModel.UpdatePredictionRequest) bool {
			return r.GroupID == 1 && r.MatchID == 2 && r.UserID == "u1" && *r.GoalsLocal == 0 && *r.GoalsVisitor == 3
		})).Return(&predictionModel.PredictionResponse{ID: 9, GoalsLocal: intPtr(0), GoalsVisitor: intPtr(3)}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"group_id": 1, "match_id": 2, "user_id": "u1", "goals_local": 0, "goals_visitor": 3,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predictions/update", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing goals", func(t *testing.T) {
		router := setupRouter(new(mockService))

		body, _ := json.Marshal(map[string]interface{}{"group_id": 1, "match_id": 2, "user_id": "u1"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predictions/update", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("locked", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("UpdatePrediction", mock.Anything, mock.Anything).Return(nil, predictionModel.ErrPredictionLocked)

		body, _ := json.Marshal(map[string]interface{}{
			"group_id": 1, "match_id": 2, "user_id": "u1", "goals_local": 1, "goals_visitor": 1,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predictions/update", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "PREDICTION_LOCKED", decodeError(t, w).Error.Code)
	})

	t.Run("negative goals", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("UpdatePrediction", mock.Anything, mock.Anything).Return(nil, predictionModel.ErrInvalidGoals)

		body, _ := json.Marshal(map[string]interface{}{
			"group_id": 1, "match_id": 2, "user_id": "u1", "goals_local": -1, "goals_visitor": 1,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predictions/update", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetMatchPredictions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("GetMatchPredictions", mock.Anything, int64(1), int64(2), "u1").
			Return(&predictionModel.MatchPredictionsResponse{GroupID: 1, MatchID: 2, Visible: true}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/match?group_id=1&match_id=2&viewer_id=u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body predictionModel.MatchPredictionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Visible)
	})

	t.Run("missing match id", func(t *testing.T) {
		router := setupRouter(new(mockService))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/match?group_id=1&viewer_id=u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("GetMatchPredictions", mock.Anything, int64(1), int64(2), "u1").Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/predictions/match?group_id=1&match_id=2&viewer_id=u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, w).Error.Code)
	})
}

func TestHandler_SyncGroup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(mockSvc)
		mockSvc.On("SynchronizeGroupPredictions", mock.Anything, int64(4)).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predictions/sync", bytes.NewBufferString(`{"group_id":4}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body predictionModel.SyncGroupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "synchronized", body.Status)
	})

	t.Run("invalid body", func(t *testing.T) {
		router := setupRouter(new(mockService))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/predictions/sync", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
