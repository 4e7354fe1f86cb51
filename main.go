package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/venkatesh1545/drone-x-alert-now/config"
	"github.com/venkatesh1545/drone-x-alert-now/database"
	"github.com/venkatesh1545/drone-x-alert-now/routes"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
	"github.com/venkatesh1545/drone-x-alert-now/workers"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	setupLogger(cfg)

	// Database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}
	defer database.Disconnect()

	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	if cfg.Environment == "development" {
		if err := database.RunSeeders(db); err != nil {
			logrus.Warn("Seeders failed: ", err)
		}
	}

	// Redis
	redisClient := config.InitRedis(cfg)
	defer redisClient.Close()

	// Push and SMS delivery; both providers are optional
	sender, err := utils.NewNotificationSender(
		cfg.FirebaseCredentials,
		cfg.TwilioAccountSID,
		cfg.TwilioAuthToken,
		cfg.TwilioPhoneNumber,
	)
	if err != nil {
		logrus.Warn("Notification providers unavailable: ", err)
	}

	// WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Background workers
	locationWorker := workers.StartLocationWorker(db, redisClient, hub)
	notificationWorker := workers.StartNotificationWorker(db, sender, cfg.NotificationBatchSize)
	cleanupWorker := workers.StartCleanupWorker(cfg, db, hub, sender)

	// Routes
	router := routes.SetupRoutes(cfg, db, redisClient, hub, sender)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logrus.Info("🚀 Drone-X Alert backend starting on port ", cfg.Port)
		logrus.Info("📡 WebSocket endpoint: /ws")
		logrus.Info("💖 Health Check: /health")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatal("Server forced to shutdown: ", err)
	}

	locationWorker.Stop()
	notificationWorker.Stop()
	cleanupWorker.Stop()

	logrus.Info("✅ Server shutdown complete")
}

func setupLogger(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if cfg.Environment == "development" {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}
