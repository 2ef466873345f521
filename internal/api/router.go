package api

import (
	"net/http"

	"LottoSync/internal/metrics"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

// NewRouter trigger, query, metrics and pprof routes
func NewRouter(mode string, sync *SyncHandler, draws *DrawHandler, m *metrics.Manager) *gin.Engine {
	gin.SetMode(mode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), m.GinMiddleware())

	// pprof for profiling long history resets
	pprof.Register(r)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.POST("/sync/lottery/:type", sync.SyncLotteryHandler)
	r.POST("/sync/all", sync.SyncAllHandler)
	r.POST("/sync/reset", sync.ResetHandler)

	r.GET("/api/draws", draws.ListDraws)
	r.GET("/api/runs", draws.ListRuns)
	r.GET("/api/lottery-types", draws.ListLotteryTypes)
	return r
}
