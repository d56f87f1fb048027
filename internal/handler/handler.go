// Package handler provides HTTP request handlers for the gateway API.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/walink/walink/internal/media"
	"github.com/walink/walink/internal/middleware"
	"github.com/walink/walink/internal/models"
	"github.com/walink/walink/internal/service"
)

// Response bodies on the send endpoint are part of the API contract.
const (
	statusMessage = "WaLink API is running!"

	errorMessageNotReady = "WhatsApp Client is not ready. Please wait for it to connect."
	errorMessageRequired = `Both "number" and either "message" (for text) or "media" (for file) are required in the request body.`
	errorMessageBadMedia = `Invalid "media" object. It must contain either "data" and "mimetype" or "path".`
	errorMessageNoFile   = "Media file not found at the specified path on the server."
	errorMessageSend     = "Failed to send message via WhatsApp"
	errorMessageGeneric  = "An error occurred while sending the message"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

// NewHandler creates a new handler instance for the gateway routes.
func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Status handles GET / as a liveness probe.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, models.StatusResponse{Status: statusMessage})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	if health.Status == service.StatusUnhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, health)
}

// SendMessage handles POST /send-message. Authentication has already
// happened in middleware; every terminal state of the pipeline maps to
// exactly one response here.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req models.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Send request rejected: malformed body",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusBadRequest, errorMessageRequired, nil)
		return
	}

	outcome, err := h.service.Message.Send(r.Context(), &req)
	if err != nil {
		h.mapSendError(w, r, requestID, err)
		return
	}

	if !outcome.Delivered {
		// The call returned but the account did not recognize itself as
		// sender; distinct from a thrown error, reported with details.
		h.logger.Error("Send not confirmed",
			zap.String("request_id", requestID),
			zap.String("address", outcome.Address))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, models.SendResponse{
			Success: false,
			Message: errorMessageSend,
			Details: outcome,
		})
		return
	}

	render.JSON(w, r, models.SendResponse{
		Success:   true,
		Message:   fmt.Sprintf("Message sent to %s", outcome.Address),
		MessageID: outcome.MessageID,
		Type:      outcome.Type,
	})
}

func (h *Handler) mapSendError(w http.ResponseWriter, r *http.Request, requestID string, err error) {
	switch {
	case errors.Is(err, service.ErrNotReady):
		h.sendError(w, r, http.StatusServiceUnavailable, errorMessageNotReady, nil)

	case errors.Is(err, service.ErrMissingFields):
		h.sendError(w, r, http.StatusBadRequest, errorMessageRequired, nil)

	case errors.Is(err, media.ErrInvalidInput):
		h.sendError(w, r, http.StatusBadRequest, errorMessageBadMedia, nil)

	case errors.Is(err, media.ErrFileNotFound):
		h.logger.Error("Send failed: media file missing",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, errorMessageNoFile, err)

	default:
		h.logger.Error("Send failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, errorMessageGeneric, err)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, message string, err error) {
	resp := models.SendResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	render.Status(r, statusCode)
	render.JSON(w, r, resp)
}
