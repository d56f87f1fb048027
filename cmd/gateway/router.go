package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/walink/walink/internal/handler"
	"github.com/walink/walink/internal/middleware"
)

func setupRouter(h *handler.Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Status)
	r.Get("/health", h.Health)

	// Only the send endpoint requires the API key.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(apiKey, logger))
		r.Post("/send-message", h.SendMessage)
	})

	return r
}
