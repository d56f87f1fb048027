package relay

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/walink/walink/internal/models"
	"github.com/walink/walink/internal/whatsapp"
)

const (
	pingCommand = "!ping"
	pingReply   = "pong"

	echoCommand     = "!echo "
	echoReplyPrefix = "你說的是: "

	missingAddress = "無地址信息"
)

// Relay assembles the normalized event for each incoming message, forwards
// it to the callback URL, and answers the built-in commands. All failures
// are recovered locally; nothing here surfaces to any HTTP caller.
type Relay struct {
	forwarder *Forwarder
	testMode  bool
	logger    *zap.Logger
}

func NewRelay(forwarder *Forwarder, testMode bool, logger *zap.Logger) *Relay {
	return &Relay{
		forwarder: forwarder,
		testMode:  testMode,
		logger:    logger,
	}
}

// HandleMessage implements whatsapp.EventHandler.
func (r *Relay) HandleMessage(ctx context.Context, msg whatsapp.Message) {
	event := r.buildEvent(ctx, msg)
	r.forward(ctx, event)
	r.answerCommands(ctx, msg, event.Body)
}

// buildEvent fills the skeleton record and applies the conditional
// enrichments in sequence. Each one may fail on its own; a failed media
// download is recorded on the event and the relay proceeds.
func (r *Relay) buildEvent(ctx context.Context, msg whatsapp.Message) *models.InboundEvent {
	event := msg.Event()

	if msg.HasMedia() {
		attachment, err := msg.DownloadMedia(ctx)
		if err != nil {
			r.logger.Error("Failed to download media",
				zap.String("message_id", event.MessageID),
				zap.String("from", event.From),
				zap.Error(err))
			event.MediaError = err.Error()
		} else {
			event.Media = attachment
			r.logger.Info("Media downloaded",
				zap.String("mimetype", attachment.Mimetype),
				zap.String("filename", attachment.Filename))
		}
	}

	if event.Type == models.KindLocation {
		if loc := msg.Location(); loc != nil {
			if loc.Address == "" {
				loc.Address = missingAddress
			}
			event.Location = loc
		}
	}

	if event.Type == models.KindContactCard {
		contact, err := msg.Contact(ctx)
		if err != nil {
			r.logger.Warn("Failed to resolve contact",
				zap.String("message_id", event.MessageID),
				zap.Error(err))
		} else {
			event.Contact = contact
		}
	}

	if msg.IsGroup() {
		group, err := msg.GroupInfo(ctx)
		if err != nil {
			r.logger.Warn("Failed to resolve group",
				zap.String("message_id", event.MessageID),
				zap.Error(err))
		} else {
			event.GroupInfo = group
		}
	}

	return &event
}

// forward issues the single best-effort webhook POST, or skips it entirely
// when no URL is configured or the gateway runs in test mode.
func (r *Relay) forward(ctx context.Context, event *models.InboundEvent) {
	if r.testMode || !r.forwarder.Configured() {
		r.logger.Warn("Webhook URL not configured or test mode active, event not forwarded",
			zap.String("message_id", event.MessageID))
		return
	}

	if err := r.forwarder.Forward(ctx, event); err != nil {
		r.logger.Error("Webhook delivery failed",
			zap.String("message_id", event.MessageID),
			zap.String("from", event.From),
			zap.Error(err))
	}
}

// answerCommands handles the built-in text commands directly through the
// client's reply primitive, independent of the webhook outcome.
func (r *Relay) answerCommands(ctx context.Context, msg whatsapp.Message, body string) {
	var reply string

	switch {
	case body == pingCommand:
		reply = pingReply
	case strings.HasPrefix(body, echoCommand):
		reply = echoReplyPrefix + strings.TrimPrefix(body, echoCommand)
	default:
		return
	}

	if err := msg.Reply(ctx, reply); err != nil {
		r.logger.Error("Failed to send command reply",
			zap.String("reply", reply),
			zap.Error(err))
		return
	}

	r.logger.Info("Command answered", zap.String("reply", reply))
}
