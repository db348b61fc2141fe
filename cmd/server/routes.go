package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/prode/internal/config"
	groupRepository "github.com/festy23/prode/internal/group/repository"
	groupRouter "github.com/festy23/prode/internal/group/router"
	groupService "github.com/festy23/prode/internal/group/service"
	"github.com/festy23/prode/internal/health"
	"github.com/festy23/prode/internal/metrics"
	"github.com/festy23/prode/internal/middleware"
	predictionRepository "github.com/festy23/prode/internal/prediction/repository"
	predictionRouter "github.com/festy23/prode/internal/prediction/router"
	predictionService "github.com/festy23/prode/internal/prediction/service"
	standingsRouter "github.com/festy23/prode/internal/standings/router"
	tournamentRepository "github.com/festy23/prode/internal/tournament/repository"
	tournamentRouter "github.com/festy23/prode/internal/tournament/router"
	tournamentService "github.com/festy23/prode/internal/tournament/service"
	userRouter "github.com/festy23/prode/internal/user/router"
	"github.com/festy23/prode/pkg/clock"
	"github.com/festy23/prode/pkg/retry"
)

// newRouter wires the modules onto a gin engine.
// One prediction service is shared: tournaments close matches through it and
// groups synchronize through it.
func newRouter(
	cfg config.Config,
	db *gorm.DB,
	reg *prometheus.Registry,
	clk clock.Clock,
	logger *zap.SugaredLogger,
) *gin.Engine {
	m := metrics.New(reg)

	predictions := predictionService.New(predictionRepository.New(db, logger), clk, m, logger)
	closerFor := func(tx *gorm.DB) predictionService.Closer {
		return predictionService.New(predictionRepository.New(tx, logger), clk, m, logger)
	}
	tournaments := tournamentService.New(
		tournamentRepository.New(db, logger), db, closerFor, predictions, retry.TransactionConfig(), m, logger,
	)
	groups := groupService.New(groupRepository.New(db, logger), db, predictions, clk, logger)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(m))
		r.GET(cfg.Metrics.Path, metrics.Handler(reg))
	}
	r.GET("/health", health.New(db, logger).Check)

	api := r.Group("", middleware.RateLimit(cfg.RateLimit))
	userRouter.RegisterRoutes(api, db, logger)
	tournamentRouter.RegisterRoutes(api, tournaments, logger)
	groupRouter.RegisterRoutes(api, groups, logger)
	predictionRouter.RegisterRoutes(api, predictions, logger)
	standingsRouter.RegisterRoutes(api, db, logger)

	return r
}
