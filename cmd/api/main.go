package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/okarpov/carshare/internal/adapter/handler"
	"github.com/okarpov/carshare/internal/adapter/lock"
	"github.com/okarpov/carshare/internal/adapter/notifier"
	"github.com/okarpov/carshare/internal/adapter/repository/postgres"
	"github.com/okarpov/carshare/internal/core/services"
	"github.com/okarpov/carshare/internal/platform/cache"
	"github.com/okarpov/carshare/internal/platform/database"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using OS environment")
	}

	dbConfig := database.Config{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "postgres"),
		Password: getenv("DB_PASSWORD", ""),
		DBName:   getenv("DB_NAME", "carshare"),
	}

	db, err := database.NewPostgresDB(dbConfig, log)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cache.Config{
		Host: getenv("REDIS_HOST", "localhost"),
		Port: getenv("REDIS_PORT", "6379"),
	}, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	carRepo := postgres.NewCarRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	txManager := postgres.NewTxManager(db)
	carLocker := lock.NewRedisCarLocker(redisClient, log)

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()

	userNotifier := notifier.NewChannelNotifier(64, log)
	go userNotifier.Run(notifierCtx)

	bookingService := services.NewBookingService(userRepo, carRepo, bookingRepo, txManager, carLocker, userNotifier, redisClient, log)
	carService := services.NewCarService(carRepo, redisClient, log)

	mux := http.NewServeMux()
	handler.NewBookingHandler(bookingService).Register(mux)
	handler.NewCarHandler(carService).Register(mux)

	addr := ":" + getenv("PORT", "8080")
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server starting on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting")
}
