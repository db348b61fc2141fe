// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/prode/internal/user/model"
	"github.com/festy23/prode/internal/user/service"
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /users/register request.
// @Summary Create a user or refresh its profile
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.RegisterUserRequest true "Request"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/register [post].
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error registering user", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetIsActive handles POST /users/setIsActive request.
// @Summary Set user activity status
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.SetIsActiveRequest true "Request"
// @Success 200 {object} model.UserResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/setIsActive [post].
func (h *Handler) SetIsActive(c *gin.Context) {
	var req model.SetIsActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.SetIsActive(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error setting user activity", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPredictions handles GET /users/predictions request.
// Returns 200 with empty list for nonexistent users rather than 404.
// @Summary Get a user's predictions across groups
// @Tags Users
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} model.GetPredictionsResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/predictions [get].
func (h *Handler) GetPredictions(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorResponse(c, "INVALID_REQUEST", "user_id parameter is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetPredictions(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "error listing user predictions", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		notFoundResponse(c, "user not found")
	case errors.Is(err, model.ErrInvalidUserID),
		errors.Is(err, model.ErrInvalidUsername),
		errors.Is(err, model.ErrInvalidIsActive):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw(op, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
