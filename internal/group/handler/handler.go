// Package handler provides HTTP handlers for group endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	groupModel "github.com/festy23/prode/internal/group/model"
	"github.com/festy23/prode/internal/group/service"
)

// Handler handles HTTP requests for group endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new group handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateGroup handles POST /groups/create request.
// @Summary Create a group following a tournament
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body groupModel.CreateGroupRequest true "Request"
// @Success 201 {object} map[string]groupModel.GroupResponse "Response wrapped in group object"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Tournament or admin not found"
// @Router /groups/create [post].
func (h *Handler) CreateGroup(c *gin.Context) {
	var req groupModel.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error creating group", err)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"group": resp,
	})
}

// JoinGroup handles POST /groups/join request.
// @Summary Join a group by code
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body groupModel.JoinGroupRequest true "Request"
// @Success 200 {object} map[string]groupModel.GroupResponse "Response wrapped in group object"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already a member (ALREADY_MEMBER)"
// @Router /groups/join [post].
func (h *Handler) JoinGroup(c *gin.Context) {
	var req groupModel.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.JoinGroup(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error joining group", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"group": resp,
	})
}

// GetGroup handles GET /groups/get request.
// @Summary Get a group with its members
// @Tags Groups
// @Produce json
// @Param id query int true "Group ID"
// @Success 200 {object} groupModel.GroupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /groups/get [get].
func (h *Handler) GetGroup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, "INVALID_REQUEST", "id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetGroup(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "error getting group", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LeaveGroup handles POST /groups/leave request.
// @Summary Leave a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body groupModel.LeaveGroupRequest true "Request"
// @Success 200 {object} map[string]groupModel.GroupResponse "Response wrapped in group object"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Admin cannot leave (ADMIN_CANNOT_LEAVE)"
// @Router /groups/leave [post].
func (h *Handler) LeaveGroup(c *gin.Context) {
	var req groupModel.LeaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.LeaveGroup(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error leaving group", err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"group": resp,
	})
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, groupModel.ErrGroupNotFound):
		notFoundResponse(c, "group not found")
	case errors.Is(err, groupModel.ErrTournamentNotFound):
		notFoundResponse(c, "tournament not found")
	case errors.Is(err, groupModel.ErrUserNotFound):
		notFoundResponse(c, "user not found")
	case errors.Is(err, groupModel.ErrNotMember):
		notFoundResponse(c, "membership not found")
	case errors.Is(err, groupModel.ErrAlreadyMember):
		errorResponse(c, "ALREADY_MEMBER", "user is already a member of the group", http.StatusConflict)
	case errors.Is(err, groupModel.ErrAdminCannotLeave):
		errorResponse(c, "ADMIN_CANNOT_LEAVE", "group admin cannot leave the group", http.StatusConflict)
	case errors.Is(err, groupModel.ErrInvalidGroupName),
		errors.Is(err, groupModel.ErrInvalidCode),
		errors.Is(err, groupModel.ErrInvalidGroupID),
		errors.Is(err, groupModel.ErrInvalidUserID):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	default:
		h.logger.Errorw(op, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
