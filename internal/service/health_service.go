package service

import (
	"fmt"

	"github.com/walink/walink/internal/whatsapp"
)

type healthService struct {
	gate    *whatsapp.Gate
	breaker BreakerStats
}

func NewHealthService(gate *whatsapp.Gate, breaker BreakerStats) HealthService {
	return &healthService{
		gate:    gate,
		breaker: breaker,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	state := s.gate.State()

	status := &HealthStatus{
		ConnectionState: state.String(),
	}

	switch state {
	case whatsapp.StateReady:
		status.Status = StatusHealthy
	case whatsapp.StateAuthenticating:
		status.Status = StatusDegraded
	default:
		status.Status = StatusUnhealthy
	}

	if s.breaker != nil {
		status.WebhookBreakerState = s.breaker.State()
		requests, failures := s.breaker.Counts()
		if requests > 0 {
			rate := float64(failures) / float64(requests) * 100
			status.WebhookBreakerCounts = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, rate)
		} else {
			status.WebhookBreakerCounts = "No requests yet"
		}

		// Forwarding being blocked degrades an otherwise healthy gateway.
		if status.Status == StatusHealthy && status.WebhookBreakerState == "open" {
			status.Status = StatusDegraded
		}
	}

	return status
}
