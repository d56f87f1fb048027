// Package receiver implements the callback service that accepts forwarded
// WhatsApp events and persists attached media to disk.
package receiver

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/walink/walink/internal/models"
	"github.com/walink/walink/internal/storage"
)

const ackMessage = "Webhook Received Successfully!"

type Handler struct {
	store        storage.Store
	maxBodyBytes int64
	logger       *zap.Logger
}

func NewHandler(store storage.Store, maxBodyBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		store:        store,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Webhook handles POST /whatsapp-webhook. Once the body parses, the
// response is always 200: persistence is a background task whose failures
// are logged, never surfaced to the sender.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	// Inline base64 media blows well past the usual body size.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var event models.InboundEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Warn("Webhook rejected: malformed body", zap.Error(err))
		render.Status(r, http.StatusBadRequest)
		render.PlainText(w, r, "Invalid webhook payload.")
		return
	}

	h.logger.Info("Webhook received",
		zap.String("from", event.From),
		zap.String("to", event.To),
		zap.String("type", string(event.Type)),
		zap.Int64("timestamp", event.Timestamp),
		zap.String("message_id", event.MessageID))

	h.process(&event)

	render.PlainText(w, r, ackMessage)
}

// process dispatches on the message kind: a summary log for every kind,
// plus a media write for the kinds that carry one.
func (h *Handler) process(event *models.InboundEvent) {
	switch kind := models.KindOf(string(event.Type)); kind {
	case models.KindChat:
		h.logger.Info("Text message", zap.String("body", event.Body))

	case models.KindImage, models.KindVideo, models.KindDocument,
		models.KindAudio, models.KindPTT, models.KindSticker:
		h.logger.Info("Media message",
			zap.String("kind", string(kind)),
			zap.String("caption", event.Body))
		h.persistMedia(event)

	case models.KindLocation:
		if event.Location != nil {
			h.logger.Info("Location message",
				zap.Float64("latitude", event.Location.Latitude),
				zap.Float64("longitude", event.Location.Longitude),
				zap.String("address", event.Location.Address))
		} else {
			h.logger.Info("Location message without location data")
		}

	case models.KindContactCard:
		if event.Contact != nil {
			h.logger.Info("Contact card",
				zap.String("name", event.Contact.Name),
				zap.String("number", event.Contact.Number))
		} else {
			h.logger.Info("Contact card without contact data", zap.Any("payload", event))
		}

	case models.KindPollCreation, models.KindEventCreation:
		h.logger.Info("Creation message",
			zap.String("kind", string(kind)),
			zap.String("name", event.Body),
			zap.Any("payload", event))

	default:
		h.logger.Warn("Unknown message type",
			zap.String("type", string(event.Type)),
			zap.Any("payload", event))
	}
}

func (h *Handler) persistMedia(event *models.InboundEvent) {
	if event.Media == nil || event.Media.Data == "" {
		if event.MediaError != "" {
			h.logger.Warn("Media missing: download failed upstream",
				zap.String("message_id", event.MessageID),
				zap.String("media_error", event.MediaError))
		} else {
			h.logger.Warn("Media message without media payload",
				zap.String("message_id", event.MessageID))
		}
		return
	}

	data, err := base64.StdEncoding.DecodeString(event.Media.Data)
	if err != nil {
		h.logger.Error("Failed to decode media data",
			zap.String("message_id", event.MessageID),
			zap.Error(err))
		return
	}

	h.store.SaveAsync(storage.DeriveFilename(event), data)
}
