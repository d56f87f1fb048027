// Package models defines data structures used throughout the application.
package models

import "github.com/walink/walink/internal/media"

// SendRequest is the JSON body accepted by POST /send-message.
// Exactly one of Message or Media must resolve to sendable content.
type SendRequest struct {
	Number  string       `json:"number"`
	Message string       `json:"message,omitempty"`
	Media   *media.Input `json:"media,omitempty"`
	Caption string       `json:"caption,omitempty"`
}

// HasContent reports whether the request carries either text or media.
func (r *SendRequest) HasContent() bool {
	return r.Message != "" || r.Media != nil
}

// SendResponse is the JSON body returned by POST /send-message for every
// terminal state, success or failure.
type SendResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	MessageID string      `json:"messageId,omitempty"`
	Type      string      `json:"type,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// StatusResponse is the liveness body returned by GET /.
type StatusResponse struct {
	Status string `json:"status"`
}

// SendOutcome is the result of one dispatch through the WhatsApp client.
// Delivered reflects the acknowledgment flag indicating the message
// genuinely originated from this account.
type SendOutcome struct {
	Delivered bool   `json:"delivered"`
	MessageID string `json:"messageId"`
	Type      string `json:"type"`
	Address   string `json:"address"`
}
