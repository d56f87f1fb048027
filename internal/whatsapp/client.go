package whatsapp

import (
	"context"
	"time"

	"github.com/walink/walink/internal/media"
	"github.com/walink/walink/internal/models"
)

// SendResult is the acknowledgment returned by one send call. FromSelf is
// true when the channel confirms the message originated from this account;
// a false value is a distinct failure mode from a returned error.
type SendResult struct {
	MessageID string
	FromSelf  bool
	Timestamp time.Time
}

// Client is the send primitive the gateway dispatches through. Calls carry
// no timeout and are never retried here.
type Client interface {
	SendText(ctx context.Context, to string, text string) (*SendResult, error)
	SendMedia(ctx context.Context, to string, obj *media.Object) (*SendResult, error)
}

// Message is one incoming message as seen by the relay: a pre-built event
// skeleton plus the fallible enrichment lookups behind it.
type Message interface {
	// Event returns the skeleton event record (sender, recipient, body,
	// type, timestamp, message id) without any enrichment applied.
	Event() models.InboundEvent

	HasMedia() bool
	DownloadMedia(ctx context.Context) (*models.EventMedia, error)

	Location() *models.EventLocation

	Contact(ctx context.Context) (*models.EventContact, error)

	IsGroup() bool
	GroupInfo(ctx context.Context) (*models.EventGroup, error)

	Reply(ctx context.Context, text string) error
}

// EventHandler receives incoming messages from the client. Self-originated
// messages are filtered out before this is called.
type EventHandler interface {
	HandleMessage(ctx context.Context, msg Message)
}
