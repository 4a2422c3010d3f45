package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smartschedule-api/core/cache"
	"smartschedule-api/core/config"
	"smartschedule-api/core/constants"
	"smartschedule-api/core/database"
	"smartschedule-api/core/logger"
	"smartschedule-api/core/middleware"
	"smartschedule-api/modules/auth"
	"smartschedule-api/modules/event"
	"smartschedule-api/modules/extract"
	"smartschedule-api/modules/notification"
	"smartschedule-api/modules/scheduler"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots the whole service: config, storage, the task queue, the HTTP
// API and the reminder scheduler. It blocks until SIGINT/SIGTERM and shuts
// everything down in reverse order.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	timezone, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Scheduler.Timezone, err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.SQLx().Close()

	redisCache, err := cache.InitRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer redisCache.Close()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	asynqServer := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{constants.QueueNotifications: 1},
	})
	mux := asynq.NewServeMux()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	mw := middleware.New()
	api := e.Group("/api/v1")

	auth.Init(api, redisCache)
	eventService, eventRepo := event.Init(api, &db, mw)
	extract.Init(api, eventService, timezone, mw)
	notificationService := notification.Init(api, &db, asynqClient, mux, mw)

	sched := scheduler.NewScheduler(eventRepo, notificationService, redisCache)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := asynqServer.Run(mux); err != nil {
			logger.Error("asynq server error", err)
		}
	}()

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", err)
			stop()
		}
	}()
	logger.Info("server started", "port", cfg.Server.Port, "env", cfg.Server.Env)

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()
	asynqServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", err)
	}
	return nil
}
