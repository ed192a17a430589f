package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"hospital-api/internal/core/cache"
	"hospital-api/internal/core/config"
	"hospital-api/internal/core/database"
	"hospital-api/internal/core/logger"
	"hospital-api/internal/core/server"
	"hospital-api/internal/feature/room"
	"hospital-api/internal/feature/user"
	"hospital-api/internal/repo"
	"hospital-api/internal/service"
	"hospital-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	db := mustOpenDB(cfg, log)
	defer func() { _ = database.Close(db) }()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}
	if cfg.DB.Seed {
		if err := repo.Seed(context.Background(), db, log); err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
	}

	store := openCache(cfg.Redis, log)
	svcOpts := []service.Option{service.WithCache(store, cfg.Redis.TTL()), service.WithLogger(log)}
	reg := router.NewRegistry(
		room.Module{Service: service.NewRoomService(repo.NewRoomRepo(db), svcOpts...), Log: log},
		user.Module{Service: service.NewUserService(repo.NewUserRepo(db), svcOpts...), Log: log},
	)
	r := router.NewAPIEngine(log, cfg, reg)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(addr, r, cfg.App.HTTP)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("hospital api starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil {
			log.Fatal("hospital api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("hospital api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB, l))
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

// openCache returns nil when caching is off. An unreachable Redis is logged
// and tolerated; reads fall through to the database.
func openCache(c config.Redis, l *zap.Logger) cache.Store {
	store := cache.FromConfig(c)
	if rc, ok := store.(*cache.Redis); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			l.Warn("redis unreachable", zap.String("addr", c.Addr), zap.Error(err))
		}
	}
	if store != nil {
		l.Info("cache enabled", zap.String("addr", c.Addr), zap.Duration("ttl", c.TTL()))
	}
	return store
}
