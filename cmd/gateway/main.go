// Package main is the entry point for the WaLink gateway server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/walink/walink/internal/config"
	"github.com/walink/walink/internal/handler"
	"github.com/walink/walink/internal/middleware"
	"github.com/walink/walink/internal/relay"
	"github.com/walink/walink/internal/service"
	"github.com/walink/walink/internal/whatsapp"
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
	if cfg.Gateway.APIKey == "" {
		logger.Fatal("gateway.api_key must be configured")
	}

	gate := whatsapp.NewGate(logger)

	forwarder := relay.NewForwarder(&cfg.Webhook, logger)
	eventRelay := relay.NewRelay(forwarder, cfg.WhatsApp.TestMode, logger)

	client, err := whatsapp.NewMeow(&cfg.WhatsApp, gate, eventRelay, logger)
	if err != nil {
		logger.Fatal("Failed to initialize WhatsApp client", zap.Error(err))
	}

	if cfg.WhatsApp.TestMode {
		// No real session in test mode; the gate opens immediately.
		gate.Set(whatsapp.StateReady)
		logger.Warn("Test mode active, skipping WhatsApp connection")
	} else {
		if err := client.Connect(context.Background()); err != nil {
			logger.Fatal("Failed to connect to WhatsApp", zap.Error(err))
		}
		defer client.Disconnect()
	}

	svc := service.NewService(gate, client, forwarder, logger)

	h := handler.NewHandler(svc, logger)

	router := setupRouter(h, cfg.Gateway.APIKey, logger)

	var cors *middleware.CORSConfig
	if cfg.Middleware.EnableCORS {
		cors = middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.Middleware.AllowedOrigins
	}

	middlewareConfig := &middleware.Config{
		Logger:         logger,
		CORS:           cors,
		RateLimit:      rate.Limit(cfg.Middleware.RateLimit),
		RateLimitBurst: cfg.Middleware.RateLimitBurst,
		// Media sends can outlive any reasonable deadline, so the send
		// path carries no request timeout.
		RequestTimeout: 0,
	}

	finalHandler := middleware.Chain(middlewareConfig)(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Gateway.Port,
		Handler:      finalHandler,
		ReadTimeout:  time.Duration(cfg.Gateway.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Gateway.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting gateway server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
