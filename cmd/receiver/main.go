// Package main is the entry point for the WaLink webhook receiver.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/walink/walink/internal/config"
	"github.com/walink/walink/internal/middleware"
	"github.com/walink/walink/internal/receiver"
	"github.com/walink/walink/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			// Handle error silently
			_ = syncErr
		}
	}()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	store, err := storage.NewMediaStore(cfg.Media.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize media store", zap.Error(err))
	}
	logger.Info("Media directory ready", zap.String("dir", cfg.Media.Dir))

	h := receiver.NewHandler(store, cfg.Receiver.MaxBodyBytes, logger)

	router := chi.NewRouter()
	router.Post("/whatsapp-webhook", h.Webhook)

	middlewareConfig := &middleware.Config{
		Logger:         logger,
		RateLimit:      rate.Limit(cfg.Middleware.RateLimit),
		RateLimitBurst: cfg.Middleware.RateLimitBurst,
		RequestTimeout: time.Duration(cfg.Receiver.RequestTimeout) * time.Second,
	}

	finalHandler := middleware.Chain(middlewareConfig)(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Receiver.Port,
		Handler:      finalHandler,
		ReadTimeout:  time.Duration(cfg.Receiver.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Receiver.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting webhook receiver", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
