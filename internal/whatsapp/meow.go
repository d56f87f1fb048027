package whatsapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"

	"github.com/walink/walink/internal/config"
	"github.com/walink/walink/internal/media"
)

// Meow adapts a whatsmeow client to the gateway's Client interface and
// feeds lifecycle events into the Gate and incoming messages into the
// configured EventHandler.
type Meow struct {
	client  *whatsmeow.Client
	gate    *Gate
	handler EventHandler
	logger  *zap.Logger
}

func NewMeow(cfg *config.WhatsAppConfig, gate *Gate, handler EventHandler, logger *zap.Logger) (*Meow, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	container, err := sqlstore.New("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", cfg.SessionPath), waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	device, err := container.GetFirstDevice()
	if err != nil {
		return nil, fmt.Errorf("failed to load device: %w", err)
	}

	m := &Meow{
		client:  whatsmeow.NewClient(device, waLog.Noop),
		gate:    gate,
		handler: handler,
		logger:  logger,
	}
	m.client.AddEventHandler(m.handleEvent)

	return m, nil
}

// Connect starts the session. On first run it renders the pairing QR code
// in the terminal and waits for the phone to scan it.
func (m *Meow) Connect(ctx context.Context) error {
	if m.client.Store.ID == nil {
		qrChan, err := m.client.GetQRChannel(ctx)
		if err != nil {
			return fmt.Errorf("failed to open QR channel: %w", err)
		}
		if err := m.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}

		m.gate.Set(StateAuthenticating)
		go func() {
			for evt := range qrChan {
				if evt.Event == "code" {
					m.logger.Info("Scan the QR code with the WhatsApp mobile app to log in")
					qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
				} else {
					m.logger.Info("QR channel event", zap.String("event", evt.Event))
				}
			}
		}()
		return nil
	}

	return m.client.Connect()
}

// Disconnect tears the session down.
func (m *Meow) Disconnect() {
	m.client.Disconnect()
}

func (m *Meow) handleEvent(rawEvt interface{}) {
	switch evt := rawEvt.(type) {
	case *events.PairSuccess:
		m.gate.Set(StateAuthenticating)
	case *events.Connected:
		m.gate.Set(StateReady)
		m.logger.Info("WhatsApp client is ready")
	case *events.Disconnected:
		m.gate.Set(StateDisconnected)
		m.logger.Warn("WhatsApp client disconnected")
	case *events.LoggedOut:
		m.gate.Set(StateDisconnected)
		m.logger.Warn("WhatsApp session logged out", zap.Stringer("reason", evt.Reason))
	case *events.Message:
		m.handleMessage(evt)
	}
}

func (m *Meow) handleMessage(evt *events.Message) {
	if evt.Info.IsFromMe {
		// Own outgoing messages are observed but never relayed.
		m.logger.Info("Message sent from this account",
			zap.String("to", evt.Info.Chat.String()),
			zap.String("body", bodyOf(evt.Message)),
			zap.String("message_id", evt.Info.ID))
		return
	}

	m.logger.Info("Message received",
		zap.String("from", evt.Info.Sender.String()),
		zap.String("type", string(kindOf(evt.Message))),
		zap.String("message_id", evt.Info.ID))

	if m.handler == nil {
		return
	}

	var own types.JID
	if m.client.Store.ID != nil {
		own = m.client.Store.ID.ToNonAD()
	}

	go m.handler.HandleMessage(context.Background(), &meowMessage{
		client: m.client,
		evt:    evt,
		own:    own,
	})
}

// SendText implements Client.
func (m *Meow) SendText(ctx context.Context, to string, text string) (*SendResult, error) {
	jid, err := parseAddress(to)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send text message: %w", err)
	}

	return &SendResult{MessageID: resp.ID, FromSelf: true, Timestamp: resp.Timestamp}, nil
}

// SendMedia implements Client.
func (m *Meow) SendMedia(ctx context.Context, to string, obj *media.Object) (*SendResult, error) {
	jid, err := parseAddress(to)
	if err != nil {
		return nil, err
	}

	uploaded, err := m.client.Upload(ctx, obj.Data, uploadTypeFor(obj.Mimetype))
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}

	resp, err := m.client.SendMessage(ctx, jid, mediaMessage(obj, uploaded))
	if err != nil {
		return nil, fmt.Errorf("failed to send media message: %w", err)
	}

	return &SendResult{MessageID: resp.ID, FromSelf: true, Timestamp: resp.Timestamp}, nil
}

// parseAddress turns a normalized transport address (digits@c.us) into a
// JID, mapping the legacy user server onto the modern one.
func parseAddress(to string) (types.JID, error) {
	jid, err := types.ParseJID(to)
	if err != nil {
		return types.EmptyJID, fmt.Errorf("invalid transport address %q: %w", to, err)
	}
	if jid.Server == types.LegacyUserServer {
		jid.Server = types.DefaultUserServer
	}
	return jid, nil
}

func uploadTypeFor(mimetype string) whatsmeow.MediaType {
	switch {
	case strings.HasPrefix(mimetype, "image/"):
		return whatsmeow.MediaImage
	case strings.HasPrefix(mimetype, "video/"):
		return whatsmeow.MediaVideo
	case strings.HasPrefix(mimetype, "audio/"):
		return whatsmeow.MediaAudio
	default:
		return whatsmeow.MediaDocument
	}
}

func mediaMessage(obj *media.Object, up whatsmeow.UploadResponse) *waE2E.Message {
	switch {
	case strings.HasPrefix(obj.Mimetype, "image/"):
		return &waE2E.Message{ImageMessage: &waE2E.ImageMessage{
			Caption:       proto.String(obj.Caption),
			Mimetype:      proto.String(obj.Mimetype),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
		}}
	case strings.HasPrefix(obj.Mimetype, "video/"):
		return &waE2E.Message{VideoMessage: &waE2E.VideoMessage{
			Caption:       proto.String(obj.Caption),
			Mimetype:      proto.String(obj.Mimetype),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
		}}
	case strings.HasPrefix(obj.Mimetype, "audio/"):
		return &waE2E.Message{AudioMessage: &waE2E.AudioMessage{
			Mimetype:      proto.String(obj.Mimetype),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
		}}
	default:
		return &waE2E.Message{DocumentMessage: &waE2E.DocumentMessage{
			Caption:       proto.String(obj.Caption),
			FileName:      proto.String(obj.Filename),
			Mimetype:      proto.String(obj.Mimetype),
			URL:           proto.String(up.URL),
			DirectPath:    proto.String(up.DirectPath),
			MediaKey:      up.MediaKey,
			FileEncSHA256: up.FileEncSHA256,
			FileSHA256:    up.FileSHA256,
			FileLength:    proto.Uint64(up.FileLength),
		}}
	}
}
