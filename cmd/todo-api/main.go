package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"todo-api/configs"
	"todo-api/internal/application/schedule"
	"todo-api/internal/application/server"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/limiter"
	"todo-api/internal/domain/usecase/health"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/infra/database/gorm"
	"todo-api/internal/infra/metrics"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
)

// @title Todo API
// @version 1.0
// @description Create, list, update and soft delete todos.
// @BasePath /
func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("Fail to load configuration", zap.Error(err))
	}
	log.Setup(cfg.ApplicationName, cfg.LogLevel)
	defer log.Sync()

	log.Info(msg.GetMessage("app.start", cfg.ApplicationName))
	if cfg.UsesDefaultSecret() {
		log.Warn(msg.GetMessage("app.default-secret"))
	}

	// Init infra
	database, err := gorm.Open(cfg.Database)
	if err != nil {
		log.Fatal("Fail to open database", zap.Error(err))
	}
	defer func() { _ = gorm.Close(database) }()

	redisClient, rateLimiter := initRateLimiter(cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	appMetrics := metrics.New()

	// Init Gateway
	todoGateway := db.NewGormTodoGateway(database)
	healthDBGateway := db.NewGormHealthDBGateway(database)
	redisHealthGateway := limiter.NewRedisHealthGateway(redisClient)

	// Init UseCase
	todoUseCase := todo.NewTodoUseCase(todoGateway)
	healthUseCase := health.NewHealthUseCase(healthDBGateway, redisHealthGateway)

	deps := server.Dependencies{
		TodoUseCase:     todoUseCase,
		HealthUseCase:   healthUseCase,
		HealthDBGateway: healthDBGateway,
		Metrics:         appMetrics,
	}
	if rateLimiter != nil {
		deps.Limiter = rateLimiter
	}
	e := server.New(deps)

	// Init Schedule
	todoStatsScheduler := schedule.NewTodoStatsScheduler(todoGateway, appMetrics)
	if err := todoStatsScheduler.InitTodoStatsScheduleTasks(cfg.TodoStatsCron); err != nil {
		log.Fatal("Fail to schedule todo statistics", zap.Error(err))
	}
	todoStatsScheduler.RefreshTodoStats()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start Routes
	go func() {
		log.Info(msg.GetMessage("app.started", cfg.ApplicationName, cfg.Server.Port))
		if err := e.Start(":" + strconv.Itoa(cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Fail to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping", cfg.ApplicationName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Fail to shut down server", zap.Error(err))
	}
	todoStatsScheduler.Stop()

	log.Info(msg.GetMessage("app.stopped", cfg.ApplicationName))
}

// initRateLimiter connects to Redis when rate limiting is enabled. Both results are nil otherwise.
func initRateLimiter(cfg *configs.Config) (*redis.Client, *redis.RateLimiter) {
	if !cfg.RateLimit.Enabled {
		return nil, nil
	}

	client, err := redis.NewClient(redis.NewRedisConfig().
		WithHost(cfg.Redis.Host).
		WithPort(cfg.Redis.Port).
		WithPassword(cfg.Redis.Password).
		WithDatabase(cfg.Redis.Database))
	if err != nil {
		log.Fatal("Fail to create redis client", zap.Error(err))
	}

	rateLimiter, err := redis.NewRateLimiter(client, "http", redis.NewRateLimiterOptions().
		WithNamespace(cfg.RateLimit.Namespace).
		WithMaxTransactionsPerSecond(cfg.RateLimit.MaxPerSecond).
		WithMaxActiveTransactions(cfg.RateLimit.MaxActive))
	if err != nil {
		log.Fatal("Fail to create rate limiter", zap.Error(err))
	}
	return client, rateLimiter
}
