// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/prode/internal/user/handler"
	"github.com/festy23/prode/internal/user/repository"
	"github.com/festy23/prode/internal/user/service"
)

// RegisterRoutes registers user module routes.
func RegisterRoutes(r gin.IRoutes, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.POST("/users/register", h.Register)
	r.POST("/users/setIsActive", h.SetIsActive)
	r.GET("/users/predictions", h.GetPredictions)
}
