package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hospital-api/internal/core/config"
	"hospital-api/internal/core/logger"
)

// NewRouter returns a bare engine with panic recovery and CORS. gin's own debug
// output is routed through l.
func NewRouter(l *zap.Logger, c config.CORS) *gin.Engine {
	gin.DefaultWriter = logger.ToWriter(l, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(l, zapcore.ErrorLevel)

	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true))

	cc := cors.DefaultConfig()
	if len(c.AllowOrigins) == 0 || (len(c.AllowOrigins) == 1 && c.AllowOrigins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowOrigins
	}
	cc.ExposeHeaders = []string{"Location", "X-Request-ID"}
	r.Use(cors.New(cc))
	return r
}

func BuildServer(addr string, handler http.Handler, h config.HTTP) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    time.Duration(h.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(h.WriteTimeoutSec) * time.Second,
		IdleTimeout:    time.Duration(h.IdleTimeoutSec) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}

// StartHTTP blocks until the server stops; a graceful Shutdown is not an error.
func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
