package models

// EventMessageReceived is the tag carried by every forwarded inbound event.
const EventMessageReceived = "message_received"

// MessageKind is the closed set of message types carried on inbound events.
// Unrecognized wire values decode to whatever string arrived; KindOf maps
// them to KindUnknown so dispatch always has a fallback branch.
type MessageKind string

const (
	KindChat          MessageKind = "chat"
	KindImage         MessageKind = "image"
	KindVideo         MessageKind = "video"
	KindAudio         MessageKind = "audio"
	KindPTT           MessageKind = "ptt"
	KindDocument      MessageKind = "document"
	KindSticker       MessageKind = "sticker"
	KindLocation      MessageKind = "location"
	KindContactCard   MessageKind = "contact_card"
	KindPollCreation  MessageKind = "poll_creation"
	KindEventCreation MessageKind = "event_creation"
	KindUnknown       MessageKind = "unknown"
)

var knownKinds = map[MessageKind]bool{
	KindChat:          true,
	KindImage:         true,
	KindVideo:         true,
	KindAudio:         true,
	KindPTT:           true,
	KindDocument:      true,
	KindSticker:       true,
	KindLocation:      true,
	KindContactCard:   true,
	KindPollCreation:  true,
	KindEventCreation: true,
}

// KindOf normalizes a wire type tag into the closed enum.
func KindOf(s string) MessageKind {
	k := MessageKind(s)
	if knownKinds[k] {
		return k
	}
	return KindUnknown
}

// HasMedia reports whether events of this kind carry a media payload.
func (k MessageKind) HasMedia() bool {
	switch k {
	case KindImage, KindVideo, KindDocument, KindAudio, KindPTT, KindSticker:
		return true
	}
	return false
}

// InboundEvent is the normalized record forwarded to the callback URL for
// every incoming message. Field names are part of the webhook contract.
type InboundEvent struct {
	Event      string         `json:"event"`
	From       string         `json:"from"`
	To         string         `json:"to"`
	Body       string         `json:"body"`
	Type       MessageKind    `json:"type"`
	Timestamp  int64          `json:"timestamp"`
	MessageID  string         `json:"messageId"`
	Media      *EventMedia    `json:"media,omitempty"`
	MediaError string         `json:"mediaError,omitempty"`
	Location   *EventLocation `json:"location,omitempty"`
	Contact    *EventContact  `json:"contact,omitempty"`
	GroupInfo  *EventGroup    `json:"groupInfo,omitempty"`
}

// EventMedia is a downloaded attachment, base64-encoded for transport.
type EventMedia struct {
	Mimetype string `json:"mimetype"`
	Filename string `json:"filename,omitempty"`
	Data     string `json:"data"`
}

type EventLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type EventContact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsMyContact bool   `json:"isMyContact"`
	Number      string `json:"number"`
}

type EventGroup struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}
