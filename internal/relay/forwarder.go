package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/walink/walink/internal/config"
	"github.com/walink/walink/internal/models"
)

// Forwarder delivers inbound events to the configured callback URL with a
// single best-effort POST through a circuit breaker. No queue, no retry.
type Forwarder struct {
	url        string
	httpClient *http.Client
	breaker    *circuitBreaker
	logger     *zap.Logger
}

func NewForwarder(cfg *config.WebhookConfig, logger *zap.Logger) *Forwarder {
	return &Forwarder{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		breaker: newCircuitBreaker(&cfg.CircuitBreaker, logger),
		logger:  logger,
	}
}

// Configured reports whether a callback URL is set.
func (f *Forwarder) Configured() bool {
	return f.url != ""
}

// Forward posts one event to the callback URL.
func (f *Forwarder) Forward(ctx context.Context, event *models.InboundEvent) error {
	return f.breaker.execute(ctx, func() error {
		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				f.logger.Warn("Failed to close response body", zap.Error(err))
			}
		}()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		f.logger.Info("Webhook delivered",
			zap.String("message_id", event.MessageID),
			zap.Int("status", resp.StatusCode))

		return nil
	})
}

// State implements service.BreakerStats.
func (f *Forwarder) State() string {
	return f.breaker.state()
}

// Counts implements service.BreakerStats.
func (f *Forwarder) Counts() (requests, failures uint32) {
	return f.breaker.counts()
}
