package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/walink/walink/internal/media"
	"github.com/walink/walink/internal/models"
	"github.com/walink/walink/internal/whatsapp"
)

// addressSuffix is the fixed domain appended to normalized numbers to form
// a transport address.
const addressSuffix = "@c.us"

// typeChat is the echoed type for plain text sends.
const typeChat = "chat"

type messageService struct {
	gate   *whatsapp.Gate
	client whatsapp.Client
	logger *zap.Logger
}

func NewMessageService(gate *whatsapp.Gate, client whatsapp.Client, logger *zap.Logger) MessageService {
	return &messageService{
		gate:   gate,
		client: client,
		logger: logger,
	}
}

// Send runs one request through the full pipeline: readiness check, shape
// validation, media resolution, dispatch, outcome mapping. One dispatch,
// no retry, no timeout of its own.
func (s *messageService) Send(ctx context.Context, req *models.SendRequest) (*models.SendOutcome, error) {
	if !s.gate.Ready() {
		s.logger.Warn("Send rejected: client not ready",
			zap.String("state", s.gate.State().String()))
		return nil, ErrNotReady
	}

	if req.Number == "" || !req.HasContent() {
		return nil, ErrMissingFields
	}

	address := NormalizeNumber(req.Number)

	var (
		result   *whatsapp.SendResult
		echoType string
		err      error
	)

	if req.Media != nil {
		var obj *media.Object
		obj, err = media.Resolve(req.Media)
		if err != nil {
			return nil, err
		}
		if req.Caption != "" {
			obj.Caption = req.Caption
		}

		result, err = s.client.SendMedia(ctx, address, obj)
		echoType = obj.Mimetype
	} else {
		result, err = s.client.SendText(ctx, address, req.Message)
		echoType = typeChat
	}

	if err != nil {
		s.logger.Error("Send failed",
			zap.String("address", address),
			zap.String("type", echoType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to send message to %s: %w", address, err)
	}

	outcome := &models.SendOutcome{
		Delivered: result.FromSelf,
		MessageID: result.MessageID,
		Type:      echoType,
		Address:   address,
	}

	if outcome.Delivered {
		s.logger.Info("Message sent",
			zap.String("address", address),
			zap.String("message_id", outcome.MessageID),
			zap.String("type", echoType))
	} else {
		s.logger.Error("Send not confirmed as self-originated",
			zap.String("address", address),
			zap.String("message_id", outcome.MessageID))
	}

	return outcome, nil
}

// NormalizeNumber strips all non-digit characters from a raw phone number
// and appends the fixed domain suffix. Applied once, to the raw input;
// stripping is a no-op on an all-digit string.
func NormalizeNumber(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String() + addressSuffix
}
