// Package handler provides HTTP handlers for prediction endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	predictionModel "github.com/festy23/prode/internal/prediction/model"
	"github.com/festy23/prode/internal/prediction/service"
)

// Handler handles HTTP requests for prediction endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new prediction handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetPrediction handles GET /predictions/get request.
// Goals of other members are withheld until the match is watchable.
// @Summary Get a prediction as seen by a viewer
// @Tags Predictions
// @Produce json
// @Param id query int true "Prediction ID"
// @Param viewer_id query string true "Viewer user ID"
// @Success 200 {object} map[string]predictionModel.PredictionResponse "Response wrapped in prediction object"
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /predictions/get [get].
func (h *Handler) GetPrediction(c *gin.Context) {
	id, ok := queryID(c, "id")
	if !ok {
		errorResponse(c, "INVALID_REQUEST", "id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetPrediction(c.Request.Context(), id, c.Query("viewer_id"))
	if err != nil {
		h.writeError(c, "error getting prediction", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"prediction": resp,
	})
}

// UpdatePrediction handles POST /predictions/update request.
// @Summary Set the goals of the caller's prediction
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body predictionModel.UpdatePredictionRequest true "Request"
// @Success 200 {object} map[string]predictionModel.PredictionResponse "Response wrapped in prediction object"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Match locked (PREDICTION_LOCKED)"
// @Router /predictions/update [post].
func (h *Handler) UpdatePrediction(c *gin.Context) {
	var req predictionModel.UpdatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdatePrediction(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error updating prediction", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"prediction": resp,
	})
}

// GetMatchPredictions handles GET /predictions/match request.
// @Summary List a group's predictions for one match
// @Tags Predictions
// @Produce json
// @Param group_id query int true "Group ID"
// @Param match_id query int true "Match ID"
// @Param viewer_id query string true "Viewer user ID"
// @Success 200 {object} predictionModel.MatchPredictionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /predictions/match [get].
func (h *Handler) GetMatchPredictions(c *gin.Context) {
	groupID, ok := queryID(c, "group_id")
	if !ok {
		errorResponse(c, "INVALID_REQUEST", "group_id must be a positive integer", http.StatusBadRequest)
		return
	}
	matchID, ok := queryID(c, "match_id")
	if !ok {
		errorResponse(c, "INVALID_REQUEST", "match_id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetMatchPredictions(c.Request.Context(), groupID, matchID, c.Query("viewer_id"))
	if err != nil {
		h.writeError(c, "error listing match predictions", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SyncGroup handles POST /predictions/sync request.
// @Summary Create the group's missing predictions
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body predictionModel.SyncGroupRequest true "Request"
// @Success 200 {object} predictionModel.SyncGroupResponse
// @Failure 400 {object} ErrorResponse
// @Router /predictions/sync [post].
func (h *Handler) SyncGroup(c *gin.Context) {
	var req predictionModel.SyncGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GroupID <= 0 {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SynchronizeGroupPredictions(c.Request.Context(), req.GroupID); err != nil {
		h.writeError(c, "error synchronizing group", err)
		return
	}

	c.JSON(http.StatusOK, predictionModel.SyncGroupResponse{
		GroupID: req.GroupID,
		Status:  "synchronized",
	})
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, predictionModel.ErrPredictionNotFound):
		notFoundResponse(c, "prediction not found")
	case errors.Is(err, predictionModel.ErrMatchNotFound):
		notFoundResponse(c, "match not found")
	case errors.Is(err, predictionModel.ErrGroupNotFound):
		notFoundResponse(c, "group not found")
	case errors.Is(err, predictionModel.ErrPredictionLocked):
		errorResponse(c, "PREDICTION_LOCKED", "match is about to start or already closed", http.StatusConflict)
	case errors.Is(err, predictionModel.ErrNotGroupMember):
		errorResponse(c, "NOT_MEMBER", "viewer is not a member of the group", http.StatusForbidden)
	case errors.Is(err, predictionModel.ErrInvalidGoals),
		errors.Is(err, predictionModel.ErrInvalidPredictionID),
		errors.Is(err, predictionModel.ErrInvalidGroupID),
		errors.Is(err, predictionModel.ErrInvalidMatchID),
		errors.Is(err, predictionModel.ErrInvalidUserID):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw(op, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
