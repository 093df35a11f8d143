package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"travel-booking/cmd"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/wire"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/database"
	"travel-booking/pkg/gateway"
	"travel-booking/pkg/mailer"
	"travel-booking/pkg/queue"
	"travel-booking/pkg/telemetry"
	"travel-booking/pkg/utils"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("mode", config.App.Mode),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if !config.App.RunsAPI() && !config.App.RunsWorker() {
		logger.Fatal("Unknown APP_MODE", zap.String("mode", config.App.Mode))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(config.App.Name, config.Tracing, logger)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	done := make(chan error, 2)
	running := 0

	if config.App.RunsWorker() {
		group, err := queue.InitConsumerGroup(config.Kafka, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Kafka", zap.Error(err))
		}
		defer group.Close()

		worker := queue.NewWorker(config.Kafka.Topic, mailer.NewSMTPMailer(config.Email, logger), logger)

		running++
		go func() { done <- cmd.Worker(ctx, worker, group, logger) }()
	}

	if config.App.RunsAPI() {
		// Connect to database
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Database connected successfully")

		producer, err := queue.InitProducer(config.Kafka, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Kafka", zap.Error(err))
		}
		defer producer.Close()

		repos := repository.NewRepository(db, logger)
		deps := wire.Deps{
			Gateway:      gateway.NewClient(config.Gateway, http.DefaultClient, logger),
			Notifier:     queue.NewNotifier(producer, config.Kafka.Topic, logger),
			ListingCache: listingCache(config, logger),
		}

		app := wire.Wiring(repos, deps, config, logger)

		running++
		go cmd.SessionJanitor(ctx, repos.Session, logger)
		go func() { done <- cmd.APIServer(ctx, app.Router, config.App.Port, logger) }()
	}

	// First exit wins; the cancelled context stops the rest.
	if err := <-done; err != nil {
		logger.Error("Shutting down after error", zap.Error(err))
		stop()
	}
	for i := 1; i < running; i++ {
		<-done
	}

	logger.Info("Application stopped")
}

// listingCache connects to Redis when enabled. The service runs uncached
// when Redis is disabled or unreachable.
func listingCache(config *utils.Config, logger *zap.Logger) *cache.ListingCache {
	if !config.Redis.Enabled {
		logger.Info("Listing cache disabled")
		return cache.NewListingCache(nil, config.Redis.ListingTTL, logger)
	}

	rdb, err := cache.InitRedis(config.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, running without listing cache", zap.Error(err))
		return cache.NewListingCache(nil, config.Redis.ListingTTL, logger)
	}

	return cache.NewListingCache(rdb, config.Redis.ListingTTL, logger)
}
