package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"shopkeeper/internal/api/v1/handlers"
	"shopkeeper/internal/api/v1/middleware"
	v1 "shopkeeper/internal/api/v1/routes"
	"shopkeeper/internal/cache"
	"shopkeeper/internal/config"
	"shopkeeper/internal/db"
	"shopkeeper/internal/db/repos"
	"shopkeeper/internal/logger"
	"shopkeeper/internal/messaging/nats"
	"shopkeeper/internal/services"
	"shopkeeper/internal/storage"
	"shopkeeper/internal/tasks"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger.Initialize()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	database, err := db.New(db.Options{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		Port:     cfg.DBPort,
		SSL:      cfg.DBSSL,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		logger.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddress, err)
	}
	defer listingCache.Close()

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Fatalf("Failed to connect to NATS at %s: %v", cfg.NATSURL, err)
	}
	defer publisher.Close()

	imageStore, err := storage.NewImageStore(context.Background(), storage.Options{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		Bucket:    cfg.MinIOBucket,
		UseSSL:    cfg.MinIOUseSSL,
	})
	if err != nil {
		logger.Fatalf("Failed to connect to image store at %s: %v", cfg.MinIOEndpoint, err)
	}

	listingRepo := repos.NewListingRepository(database)
	eventRepo := repos.NewListingEventRepository(database)
	imageRepo := repos.NewListingImageRepository(database)

	listingService := services.NewListingService(listingRepo, eventRepo, publisher, listingCache, cfg.FilterDefaults)
	imageService := services.NewImageService(imageRepo, listingRepo, imageStore, publisher, listingCache)

	// Weekly issue reminder sweep
	scheduler := cron.New()
	sweep := tasks.NewReminderSweep(listingRepo, publisher)
	if _, err := scheduler.AddJob(cfg.ReminderSchedule, sweep); err != nil {
		logger.Fatalf("Invalid reminder schedule %q: %v", cfg.ReminderSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	handler := handlers.NewAPIHandler(listingService, imageService, cfg.DiscordGuildID, cfg.DiscordChannelID)
	v1.RegisterRoutes(app, handler, cfg.SessionSecret)

	// Shut down cleanly on SIGINT/SIGTERM so in-flight requests finish
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Errorf("Shutdown failed: %v", err)
		}
	}()

	logger.Infof("Listening on :%s", cfg.ListenPort)
	if err := app.Listen(":" + cfg.ListenPort); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
