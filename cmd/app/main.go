package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BenedictUkwenya/lifekitbackend/internal/booking"
	"github.com/BenedictUkwenya/lifekitbackend/internal/catalog"
	"github.com/BenedictUkwenya/lifekitbackend/internal/config"
	"github.com/BenedictUkwenya/lifekitbackend/internal/db"
	"github.com/BenedictUkwenya/lifekitbackend/internal/logger"
	"github.com/BenedictUkwenya/lifekitbackend/internal/notification"
	"github.com/BenedictUkwenya/lifekitbackend/internal/payment"
	"github.com/BenedictUkwenya/lifekitbackend/internal/review"
	"github.com/BenedictUkwenya/lifekitbackend/internal/server"
	"github.com/BenedictUkwenya/lifekitbackend/internal/user"
	"github.com/BenedictUkwenya/lifekitbackend/internal/wallet"
)

// @title LifeKit API
// @version 1.0
// @description Services marketplace with escrow bookings, wallets and reviews.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting LifeKit application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	userRepo := user.NewRepository(database)

	notifier := notification.New(
		notification.NewRepository(database),
		userRepo,
		cfg.RedisAddr,
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
	)
	defer notifier.Close()
	logger.Info("Notification service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Start(ctx)

	processor := payment.NewHTTPProcessor(cfg.PaymentAPIURL, cfg.PaymentAPIKey)
	walletService := wallet.NewService(wallet.NewRepository(database), processor)

	catalogRepo := catalog.NewRepository(database)
	bookingRepo := booking.NewRepository(database)
	bookingService := booking.NewService(bookingRepo, catalogRepo, walletService, notifier)
	reviewService := review.NewService(review.NewRepository(database), bookingRepo, catalogRepo)

	srv := server.New(cfg, server.Handlers{
		Bookings:      booking.NewHandler(bookingService),
		Reviews:       review.NewHandler(reviewService),
		Wallets:       wallet.NewHandler(walletService),
		Catalog:       catalog.NewHandler(catalogRepo),
		Notifications: notification.NewHandler(notifier),
		Queue:         notifier,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
