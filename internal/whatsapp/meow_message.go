package whatsapp

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	"github.com/walink/walink/internal/models"
)

// meowMessage implements Message on top of one whatsmeow message event.
type meowMessage struct {
	client *whatsmeow.Client
	evt    *events.Message
	own    types.JID
}

func (m *meowMessage) Event() models.InboundEvent {
	return models.InboundEvent{
		Event:     models.EventMessageReceived,
		From:      m.evt.Info.Sender.ToNonAD().String(),
		To:        m.own.String(),
		Body:      bodyOf(m.evt.Message),
		Type:      kindOf(m.evt.Message),
		Timestamp: m.evt.Info.Timestamp.Unix(),
		MessageID: m.evt.Info.ID,
	}
}

func (m *meowMessage) HasMedia() bool {
	return kindOf(m.evt.Message).HasMedia()
}

func (m *meowMessage) DownloadMedia(ctx context.Context) (*models.EventMedia, error) {
	data, err := m.client.DownloadAny(m.evt.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to download media: %w", err)
	}

	mimetype, filename := mediaMetaOf(m.evt.Message)
	return &models.EventMedia{
		Mimetype: mimetype,
		Filename: filename,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

func (m *meowMessage) Location() *models.EventLocation {
	loc := m.evt.Message.GetLocationMessage()
	if loc == nil {
		return nil
	}
	return &models.EventLocation{
		Latitude:  loc.GetDegreesLatitude(),
		Longitude: loc.GetDegreesLongitude(),
		Address:   loc.GetAddress(),
	}
}

func (m *meowMessage) Contact(ctx context.Context) (*models.EventContact, error) {
	sender := m.evt.Info.Sender.ToNonAD()

	info, err := m.client.Store.Contacts.GetContact(sender)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact: %w", err)
	}

	name := info.FullName
	if name == "" {
		name = info.PushName
	}
	if name == "" {
		name = sender.User
	}

	return &models.EventContact{
		ID:          sender.String(),
		Name:        name,
		IsMyContact: info.Found,
		Number:      sender.User,
	}, nil
}

func (m *meowMessage) IsGroup() bool {
	return m.evt.Info.IsGroup
}

func (m *meowMessage) GroupInfo(ctx context.Context) (*models.EventGroup, error) {
	info, err := m.client.GetGroupInfo(m.evt.Info.Chat)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve group: %w", err)
	}

	return &models.EventGroup{
		Name: info.Name,
		ID:   info.JID.String(),
	}, nil
}

func (m *meowMessage) Reply(ctx context.Context, text string) error {
	_, err := m.client.SendMessage(ctx, m.evt.Info.Chat, &waE2E.Message{
		Conversation: proto.String(text),
	})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// kindOf maps the populated part of a message onto the closed kind enum.
func kindOf(msg *waE2E.Message) models.MessageKind {
	switch {
	case msg == nil:
		return models.KindUnknown
	case msg.GetImageMessage() != nil:
		return models.KindImage
	case msg.GetVideoMessage() != nil:
		return models.KindVideo
	case msg.GetAudioMessage() != nil:
		if msg.GetAudioMessage().GetPTT() {
			return models.KindPTT
		}
		return models.KindAudio
	case msg.GetDocumentMessage() != nil:
		return models.KindDocument
	case msg.GetStickerMessage() != nil:
		return models.KindSticker
	case msg.GetLocationMessage() != nil:
		return models.KindLocation
	case msg.GetContactMessage() != nil:
		return models.KindContactCard
	case msg.GetPollCreationMessage() != nil:
		return models.KindPollCreation
	case msg.GetEventMessage() != nil:
		return models.KindEventCreation
	case msg.GetConversation() != "" || msg.GetExtendedTextMessage() != nil:
		return models.KindChat
	default:
		return models.KindUnknown
	}
}

// bodyOf extracts the text body: the message text for chat messages, the
// caption for captioned media, the vCard for contact cards.
func bodyOf(msg *waE2E.Message) string {
	switch {
	case msg == nil:
		return ""
	case msg.GetConversation() != "":
		return msg.GetConversation()
	case msg.GetExtendedTextMessage() != nil:
		return msg.GetExtendedTextMessage().GetText()
	case msg.GetImageMessage() != nil:
		return msg.GetImageMessage().GetCaption()
	case msg.GetVideoMessage() != nil:
		return msg.GetVideoMessage().GetCaption()
	case msg.GetDocumentMessage() != nil:
		return msg.GetDocumentMessage().GetCaption()
	case msg.GetContactMessage() != nil:
		return msg.GetContactMessage().GetVcard()
	case msg.GetPollCreationMessage() != nil:
		return msg.GetPollCreationMessage().GetName()
	case msg.GetEventMessage() != nil:
		return msg.GetEventMessage().GetName()
	default:
		return ""
	}
}

func mediaMetaOf(msg *waE2E.Message) (mimetype, filename string) {
	switch {
	case msg.GetImageMessage() != nil:
		return msg.GetImageMessage().GetMimetype(), ""
	case msg.GetVideoMessage() != nil:
		return msg.GetVideoMessage().GetMimetype(), ""
	case msg.GetAudioMessage() != nil:
		return msg.GetAudioMessage().GetMimetype(), ""
	case msg.GetDocumentMessage() != nil:
		return msg.GetDocumentMessage().GetMimetype(), msg.GetDocumentMessage().GetFileName()
	case msg.GetStickerMessage() != nil:
		return msg.GetStickerMessage().GetMimetype(), ""
	default:
		return "", ""
	}
}
