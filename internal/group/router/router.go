// Package router provides group module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/prode/internal/group/handler"
	"github.com/festy23/prode/internal/group/service"
)

// RegisterRoutes registers group module routes.
func RegisterRoutes(r gin.IRoutes, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/groups/create", h.CreateGroup)
	r.POST("/groups/join", h.JoinGroup)
	r.GET("/groups/get", h.GetGroup)
	r.POST("/groups/leave", h.LeaveGroup)
}
