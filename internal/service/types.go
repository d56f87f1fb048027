package service

// Overall health values reported by GET /health.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

type HealthStatus struct {
	Status               string `json:"status"`
	ConnectionState      string `json:"connection_state"`
	WebhookBreakerState  string `json:"webhook_breaker_state,omitempty"`
	WebhookBreakerCounts string `json:"webhook_breaker_counts,omitempty"`
}
