// Package relay forwards incoming WhatsApp message events to a configured
// callback URL and answers the built-in text commands.
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/walink/walink/internal/config"
)

// Breaker state names exposed through the health endpoint.
const (
	BreakerClosed   = "closed"
	BreakerHalfOpen = "half-open"
	BreakerOpen     = "open"
)

type circuitBreaker struct {
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

func newCircuitBreaker(cfg *config.CircuitBreakerConfig, logger *zap.Logger) *circuitBreaker {
	settings := gobreaker.Settings{
		Name:        "webhook-circuit-breaker",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.ConsecutiveFails && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &circuitBreaker{
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

// execute runs the given function through the circuit breaker.
func (cb *circuitBreaker) execute(ctx context.Context, fn func() error) error {
	_, err := cb.cb.Execute(func() (interface{}, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			return nil, fn()
		}
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			cb.logger.Warn("Circuit breaker is open, webhook delivery blocked")
			return fmt.Errorf("webhook delivery blocked: circuit breaker is open")
		}
		if errors.Is(err, gobreaker.ErrTooManyRequests) {
			cb.logger.Warn("Circuit breaker: too many requests")
			return fmt.Errorf("webhook delivery blocked: too many requests")
		}
		return err
	}

	return nil
}

func (cb *circuitBreaker) state() string {
	switch cb.cb.State() {
	case gobreaker.StateHalfOpen:
		return BreakerHalfOpen
	case gobreaker.StateOpen:
		return BreakerOpen
	default:
		return BreakerClosed
	}
}

func (cb *circuitBreaker) counts() (requests, failures uint32) {
	c := cb.cb.Counts()
	return c.Requests, c.TotalFailures
}
