package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"hospital-api/internal/core/config"
	"hospital-api/internal/core/server"
	mdw "hospital-api/internal/transport/http/middleware"
)

// NewAPIEngine builds the public engine: middleware chain, /health, /metrics
// and every module of reg under /api/v1.
func NewAPIEngine(l *zap.Logger, cfg *config.Config, reg *Registry) *gin.Engine {
	h := cfg.App.HTTP
	r := server.NewRouter(l, cfg.CORS)

	limit := mdw.RateLimit
	if h.RateLimitPerIP {
		limit = mdw.RateLimitPerIP
	}

	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		limit(rate.Limit(h.RateLimitRPS), h.RateLimitBurst),
		mdw.ConcurrencyLimit(h.MaxConcurrent),
		mdw.MaxBodyBytes(h.MaxBodyBytes),
		mdw.Timeout(time.Duration(h.RequestTimeoutSec)*time.Second),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	reg.MountAPI(api)
	return r
}
