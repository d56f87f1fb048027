package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walink/walink/internal/models"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		input    string
		expected models.MessageKind
	}{
		{"chat", models.KindChat},
		{"image", models.KindImage},
		{"ptt", models.KindPTT},
		{"contact_card", models.KindContactCard},
		{"poll_creation", models.KindPollCreation},
		{"ciphertext", models.KindUnknown},
		{"", models.KindUnknown},
		{"CHAT", models.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, models.KindOf(tt.input), tt.input)
	}
}

func TestMessageKind_HasMedia(t *testing.T) {
	withMedia := []models.MessageKind{
		models.KindImage, models.KindVideo, models.KindAudio,
		models.KindPTT, models.KindDocument, models.KindSticker,
	}
	for _, k := range withMedia {
		assert.True(t, k.HasMedia(), string(k))
	}

	without := []models.MessageKind{
		models.KindChat, models.KindLocation, models.KindContactCard,
		models.KindPollCreation, models.KindEventCreation, models.KindUnknown,
	}
	for _, k := range without {
		assert.False(t, k.HasMedia(), string(k))
	}
}

func TestInboundEvent_JSONContract(t *testing.T) {
	event := models.InboundEvent{
		Event:     models.EventMessageReceived,
		From:      "60123456789@s.whatsapp.net",
		To:        "60987654321@s.whatsapp.net",
		Body:      "hello",
		Type:      models.KindChat,
		Timestamp: 1717171717,
		MessageID: "3EB0ABC123",
	}

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "message_received", decoded["event"])
	assert.Equal(t, "3EB0ABC123", decoded["messageId"])
	assert.Contains(t, decoded, "timestamp")

	// Optional enrichments stay off the wire when absent.
	assert.NotContains(t, decoded, "media")
	assert.NotContains(t, decoded, "mediaError")
	assert.NotContains(t, decoded, "location")
	assert.NotContains(t, decoded, "contact")
	assert.NotContains(t, decoded, "groupInfo")
}
