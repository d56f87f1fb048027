// Package service provides business logic implementation for the application.
package service

import "errors"

var (
	// ErrNotReady means the outbound channel is down; no validation has
	// happened yet when this is returned.
	ErrNotReady = errors.New("whatsapp client is not ready")

	// ErrMissingFields means the request lacks a recipient or carries
	// neither text nor media.
	ErrMissingFields = errors.New("missing recipient or content")
)
