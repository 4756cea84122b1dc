package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/event-planner/app/internal/config"
	"github.com/event-planner/app/internal/database"
	"github.com/event-planner/app/internal/handlers"
	"github.com/event-planner/app/internal/session"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("initializing database", zap.Error(err))
	}
	defer db.Close()

	sessions, cleanup, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("initializing session store", zap.Error(err))
	}
	defer cleanup()

	h := handlers.New(db, logger, sessions, cfg.SessionTTL)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(h.Router())

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: handler,
	}

	go func() {
		logger.Info("server starting", zap.String("address", cfg.ServerAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	if cfg.SessionBackend == "redis" {
		store, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return session.NewMemoryStore(), func() {}, nil
}
