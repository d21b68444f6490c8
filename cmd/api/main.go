package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/config"
	dbpkg "github.com/taskhub/labor-marketplace/internal/db"
	"github.com/taskhub/labor-marketplace/internal/domain/rating"
	"github.com/taskhub/labor-marketplace/internal/infra/cache"
	"github.com/taskhub/labor-marketplace/internal/infra/memory"
	infraRepo "github.com/taskhub/labor-marketplace/internal/infra/repository"
	"github.com/taskhub/labor-marketplace/internal/logger"
	"github.com/taskhub/labor-marketplace/internal/middleware"
	"github.com/taskhub/labor-marketplace/internal/routes"
	"github.com/taskhub/labor-marketplace/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Env)

	deps, seedUsers, seedTasks := buildStorage(cfg, log)

	deps.Cache = buildCache(cfg, log)

	auditLogger := audit.New(deps.AuditStore)
	deps.Audit = audit.NewDispatcher(auditLogger, log)
	defer deps.Audit.Close()

	if cfg.SeedDemo {
		if err := seed.Run(context.Background(), seedUsers, seedTasks, log); err != nil {
			log.WithError(err).Fatal("seed failed")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		gin.Recovery(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr()).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

func buildStorage(cfg *config.Config, log *logrus.Logger) (routes.Deps, seed.UserWriter, seed.TaskWriter) {
	deps := routes.Deps{Config: cfg, Log: log}

	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		users := memory.NewUserRepo(store)
		tasks := memory.NewTaskRepo(store)

		deps.Users = users
		deps.Tasks = tasks
		deps.Apps = memory.NewApplicationRepo(store)
		deps.Bookings = memory.NewBookingRepo(store)
		deps.Disputes = memory.NewDisputeRepo(store)
		deps.Ratings = memory.NewRatingRepo(store)
		deps.AuditStore = store
		return deps, users, tasks
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}

	users := infraRepo.NewUserGormRepository(db)
	tasks := infraRepo.NewTaskGormRepository(db)

	deps.Users = users
	deps.Tasks = tasks
	deps.Apps = infraRepo.NewApplicationGormRepository(db)
	deps.Bookings = infraRepo.NewBookingGormRepository(db)
	deps.Disputes = infraRepo.NewDisputeGormRepository(db)
	deps.Ratings = infraRepo.NewRatingGormRepository(db)
	deps.AuditStore = infraRepo.NewAuditGormStore(db)
	return deps, users, tasks
}

func buildCache(cfg *config.Config, log *logrus.Logger) rating.SummaryCache {
	if cfg.RedisURL == "" {
		return cache.NoopRatingCache{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, rating cache disabled")
		return cache.NoopRatingCache{}
	}
	return cache.NewRedisRatingCache(client, cfg.RatingCacheTTL, log)
}
