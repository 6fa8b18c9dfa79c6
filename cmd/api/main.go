// @title           Kanban Board API
// @version         1.0
// @description     Multi-user kanban boards with ordered cards and board sharing

// @host      localhost:8000
// @BasePath  /api/kanban

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "kanban-board-api/docs" // Swagger docs import

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/config"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/job"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/router"
	"kanban-board-api/internal/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Kanban Board Service",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	m := metrics.New(logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(stopDBStats)

	var (
		redisClient *redis.Client
		blacklist   service.TokenBlacklist
	)
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(context.Background(), database.RedisConfig{
			URL:      cfg.Redis.URL,
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		blacklist = service.NewRedisTokenBlacklist(redisClient)
		logger.Info("Redis token blacklist enabled")
	} else {
		blacklist = service.NewMemoryTokenBlacklist()
		logger.Warn("Redis not configured, token revocations are kept in memory")
	}

	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, blacklist, logger)

	var notifier client.NotificationClient
	if cfg.Notification.BaseURL != "" {
		notifier = client.NewNotificationClient(cfg.Notification.BaseURL, cfg.Notification.InternalAPIKey, cfg.Notification.Timeout, logger, m)
		logger.Info("Notification client initialized", zap.String("base_url", cfg.Notification.BaseURL))
	} else {
		notifier = client.NewNoOpNotificationClient()
	}

	repos := repository.NewRepositories(db)

	scheduler := cron.New()
	integrity := job.NewIntegrityJob(repos.Columns, repository.NewUnitOfWork(db), m, logger)
	if _, err := integrity.Schedule(scheduler, cfg.Jobs.IntegritySchedule); err != nil {
		logger.Fatal("Failed to schedule position integrity job", zap.Error(err))
	}
	scheduler.Start()

	collector := metrics.NewBusinessMetricsCollector(metrics.Counters{
		Users:  repos.Users,
		Boards: repos.Boards,
		Cards:  repos.Cards,
	}, m, logger, time.Minute)
	collector.Start()

	r := router.Setup(router.Config{
		DB:           db,
		Logger:       logger,
		Redis:        redisClient,
		TokenService: tokens,
		Notifier:     notifier,
		BasePath:     cfg.Server.BasePath,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Metrics:      m,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Kanban Board Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%d%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	collector.Stop()
	<-scheduler.Stop().Done()

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
