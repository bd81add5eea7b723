package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskdeck/backend/api/handler"
	"github.com/taskdeck/backend/internal/config"
	"github.com/taskdeck/backend/internal/infrastructure/journal"
	"github.com/taskdeck/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskdeck/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskdeck/backend/internal/infrastructure/redis"
	"github.com/taskdeck/backend/internal/middleware"
	"github.com/taskdeck/backend/internal/ratelimit"
	"github.com/taskdeck/backend/internal/router"
	"github.com/taskdeck/backend/internal/services"
	"github.com/taskdeck/backend/internal/services/lifecycle"
	"github.com/taskdeck/backend/pkg/logger"
	"github.com/taskdeck/backend/repository/postgres"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, "journal")
	if err != nil {
		zapLogger.Fatal("failed to open change journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	sweeper := services.NewJournalSweeper(journalStore, zapLogger, services.SweeperConfig{
		Interval:  cfg.Journal.SweepInterval,
		Retention: cfg.Journal.Retention,
	})
	sweeper.Start()
	manager.Register("journal_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	taskRepo := postgres.NewTaskRepository(pool)
	recorder := services.NewJournalRecorder(journalStore)
	taskUseCase := taskUC.New(taskRepo, recorder, zapLogger)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, cfg.Context.RequestTimeout, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, journalStore, cfg.Context.RequestTimeout, zapLogger),
	}

	var middlewares []router.Middleware
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewLimiter(redisClient, "ratelimit:")
		middlewares = append(middlewares,
			middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, zapLogger))
	}

	r := router.New(handlers, middlewares...)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
