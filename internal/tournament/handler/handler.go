// Package handler provides HTTP handlers for tournament and match endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	tournamentModel "github.com/festy23/prode/internal/tournament/model"
	"github.com/festy23/prode/internal/tournament/service"
)

// Handler handles HTTP requests for tournament endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new tournament handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AddTournament handles POST /tournament/add request.
// @Summary Create a tournament with teams and matches
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param request body tournamentModel.AddTournamentRequest true "Request"
// @Success 201 {object} map[string]tournamentModel.TournamentResponse "Response wrapped in tournament object"
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Tournament already exists (TOURNAMENT_EXISTS)"
// @Router /tournament/add [post].
func (h *Handler) AddTournament(c *gin.Context) {
	var req tournamentModel.AddTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddTournament(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error adding tournament", err)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"tournament": resp,
	})
}

// GetTournament handles GET /tournament/get request.
// @Summary Get a tournament with teams and matches
// @Tags Tournaments
// @Produce json
// @Param id query int true "Tournament ID"
// @Success 200 {object} tournamentModel.TournamentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tournament/get [get].
func (h *Handler) GetTournament(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, "INVALID_REQUEST", "id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetTournament(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "error getting tournament", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddMatches handles POST /tournament/matches/add request.
// @Summary Add matches to a tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param request body tournamentModel.AddMatchesRequest true "Request"
// @Success 201 {object} map[string]tournamentModel.TournamentResponse "Response wrapped in tournament object"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tournament/matches/add [post].
func (h *Handler) AddMatches(c *gin.Context) {
	var req tournamentModel.AddMatchesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddMatches(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error adding matches", err)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"tournament": resp,
	})
}

// RecordResult handles POST /matches/result request.
// @Summary Record a final score and score the match's predictions
// @Tags Matches
// @Accept json
// @Produce json
// @Param request body tournamentModel.RecordResultRequest true "Request"
// @Success 200 {object} map[string]tournamentModel.MatchResponse "Response wrapped in match object"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matches/result [post].
func (h *Handler) RecordResult(c *gin.Context) {
	var req tournamentModel.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.RecordMatchResult(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error recording match result", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"match": resp,
	})
}

// ReprocessMatch handles POST /matches/reprocess request.
// @Summary Score an already played match again
// @Tags Matches
// @Accept json
// @Produce json
// @Param request body tournamentModel.ReprocessMatchRequest true "Request"
// @Success 200 {object} map[string]tournamentModel.MatchResponse "Response wrapped in match object"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Match has no result (MATCH_NOT_PLAYED)"
// @Router /matches/reprocess [post].
func (h *Handler) ReprocessMatch(c *gin.Context) {
	var req tournamentModel.ReprocessMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ReprocessMatch(c.Request.Context(), req.MatchID)
	if err != nil {
		h.writeError(c, "error reprocessing match", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"match": resp,
	})
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, tournamentModel.ErrTournamentNotFound):
		notFoundResponse(c, "tournament not found")
	case errors.Is(err, tournamentModel.ErrMatchNotFound):
		notFoundResponse(c, "match not found")
	case errors.Is(err, tournamentModel.ErrTournamentExists):
		errorResponse(c, "TOURNAMENT_EXISTS", "tournament name already exists", http.StatusConflict)
	case errors.Is(err, tournamentModel.ErrMatchNotPlayed):
		errorResponse(c, "MATCH_NOT_PLAYED", "match has no recorded result", http.StatusConflict)
	case errors.Is(err, tournamentModel.ErrUnknownTeam),
		errors.Is(err, tournamentModel.ErrSameTeam),
		errors.Is(err, tournamentModel.ErrDuplicateTeam),
		errors.Is(err, tournamentModel.ErrTooFewTeams),
		errors.Is(err, tournamentModel.ErrInvalidTournamentName),
		errors.Is(err, tournamentModel.ErrInvalidTournamentID),
		errors.Is(err, tournamentModel.ErrInvalidMatchID),
		errors.Is(err, tournamentModel.ErrInvalidGoals):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw(op, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
