// Package router provides standings module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/prode/internal/standings/handler"
	"github.com/festy23/prode/internal/standings/repository"
	"github.com/festy23/prode/internal/standings/service"
)

// RegisterRoutes registers standings module routes.
func RegisterRoutes(r gin.IRoutes, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/standings/group", h.GetGroupStandings)
	r.GET("/standings/predictions", h.GetPredictionStatistics)
}
