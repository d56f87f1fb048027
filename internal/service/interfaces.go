package service

import (
	"context"

	"github.com/walink/walink/internal/models"
)

type MessageService interface {
	Send(ctx context.Context, req *models.SendRequest) (*models.SendOutcome, error)
}

type HealthService interface {
	GetHealth() *HealthStatus
}

// BreakerStats exposes the webhook forwarder's circuit breaker to the
// health service.
type BreakerStats interface {
	State() string
	Counts() (requests, failures uint32)
}
