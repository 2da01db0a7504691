package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brillante/cmd"
	httpadapter "brillante/internal/adapters/in/http"
	"brillante/internal/adapters/out/eventlog"
	"brillante/internal/adapters/out/postgres"
	"brillante/internal/adapters/out/rabbitmq"
	"brillante/internal/adapters/out/redislock"
	"brillante/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if configs.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := openDatabase(ctx, configs)

	publisher, closePublisher := eventPublisher(configs, logger)
	defer closePublisher()

	locker, closeLocker := sweepLocker(ctx, configs, logger)
	defer closeLocker()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, locker, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs, logger)
}

func openDatabase(ctx context.Context, configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error getting database handle: %v", err)
	}
	if err = postgres.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}
	return gormDB
}

// eventPublisher publishes to RabbitMQ when RABBITMQ_URL is set and to the log otherwise.
func eventPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if configs.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL is not set, domain events go to the log")
		return eventlog.NewPublisher(logger), func() {}
	}

	publisher, err := rabbitmq.NewPublisher(configs.RabbitMQURL, configs.EventsQueue, logger)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}
	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("Failed to close RabbitMQ publisher", "error", closeErr)
		}
	}
}

// sweepLocker elects the sweeping replica through Redis when REDIS_ADDR is set. A single
// replica deployment runs without it.
func sweepLocker(ctx context.Context, configs cmd.Config, logger *slog.Logger) (ports.Locker, func()) {
	if configs.RedisAddr == "" {
		logger.Info("REDIS_ADDR is not set, every replica sweeps stale sessions")
		return redislock.NoopLocker{}, func() {}
	}

	client, err := redislock.NewClient(ctx, configs.RedisAddr, configs.RedisPassword)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	return redislock.NewLocker(client, "brillante:"), func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Error("Failed to close Redis client", "error", closeErr)
		}
	}
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("Error loading API document: %v", err)
	}
	validator, err := httpadapter.RequestValidator(doc)
	if err != nil {
		log.Fatalf("Error building request validator: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(httpadapter.RequestLogger(logger))

	if err = httpadapter.MountDocs(e, doc); err != nil {
		log.Fatalf("Error mounting API docs: %v", err)
	}
	app.CreateHTTPServer().RegisterRoutes(e, httpadapter.JWTAuth(configs.JWTSecret), validator)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", startErr)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
