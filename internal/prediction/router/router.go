// Package router provides prediction module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/prode/internal/prediction/handler"
	"github.com/festy23/prode/internal/prediction/service"
)

// RegisterRoutes registers prediction module routes.
// The service is shared with the tournament and group modules, which drive closure and synchronization.
func RegisterRoutes(r gin.IRoutes, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.GET("/predictions/get", h.GetPrediction)
	r.POST("/predictions/update", h.UpdatePrediction)
	r.GET("/predictions/match", h.GetMatchPredictions)
	r.POST("/predictions/sync", h.SyncGroup)
}
