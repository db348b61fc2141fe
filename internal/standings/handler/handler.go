// Package handler provides HTTP handlers for standings endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/prode/internal/standings/model"
	"github.com/festy23/prode/internal/standings/service"
)

// Handler handles HTTP requests for standings endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new standings handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetGroupStandings handles GET /standings/group request.
// @Summary Get the ranked table of a group
// @Tags Standings
// @Produce json
// @Param group_id query int true "Group ID"
// @Success 200 {object} model.GroupStandingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /standings/group [get].
func (h *Handler) GetGroupStandings(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		errorResponse(c, "INVALID_REQUEST", "group_id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetGroupStandings(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "error getting group standings", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPredictionStatistics handles GET /standings/predictions request.
// @Summary Get prediction counts of a group
// @Tags Standings
// @Produce json
// @Param group_id query int true "Group ID"
// @Success 200 {object} model.PredictionStatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /standings/predictions [get].
func (h *Handler) GetPredictionStatistics(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		errorResponse(c, "INVALID_REQUEST", "group_id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetPredictionStatistics(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "error getting prediction statistics", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, model.ErrGroupNotFound):
		errorResponse(c, "NOT_FOUND", "group not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidGroupID):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw(op, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
