// Package router provides tournament module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/prode/internal/tournament/handler"
	"github.com/festy23/prode/internal/tournament/service"
)

// RegisterRoutes registers tournament and match routes.
func RegisterRoutes(r gin.IRoutes, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/tournament/add", h.AddTournament)
	r.GET("/tournament/get", h.GetTournament)
	r.POST("/tournament/matches/add", h.AddMatches)
	r.POST("/matches/result", h.RecordResult)
	r.POST("/matches/reprocess", h.ReprocessMatch)
}
