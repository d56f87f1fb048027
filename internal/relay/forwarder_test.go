package relay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/walink/walink/internal/models"
	"github.com/walink/walink/internal/relay"
)

func TestForwarder_Configured(t *testing.T) {
	assert.False(t, relay.NewForwarder(webhookConfig(""), zap.NewNop()).Configured())
	assert.True(t, relay.NewForwarder(webhookConfig("http://localhost:5000/whatsapp-webhook"), zap.NewNop()).Configured())
}

func TestForwarder_Forward_Success(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := relay.NewForwarder(webhookConfig(server.URL), zap.NewNop())

	err := f.Forward(context.Background(), &models.InboundEvent{
		Event:     models.EventMessageReceived,
		MessageID: "3EB0ABC123",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, relay.BreakerClosed, f.State())
}

func TestForwarder_Forward_AcceptsAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	f := relay.NewForwarder(webhookConfig(server.URL), zap.NewNop())

	assert.NoError(t, f.Forward(context.Background(), &models.InboundEvent{}))
}

func TestForwarder_Forward_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := relay.NewForwarder(webhookConfig(server.URL), zap.NewNop())

	err := f.Forward(context.Background(), &models.InboundEvent{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")

	requests, failures := f.Counts()
	assert.Equal(t, uint32(1), requests)
	assert.Equal(t, uint32(1), failures)
}

func TestForwarder_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	f := relay.NewForwarder(webhookConfig(server.URL), zap.NewNop())

	for i := 0; i < 5; i++ {
		err := f.Forward(context.Background(), &models.InboundEvent{})
		require.Error(t, err)
	}

	assert.Equal(t, relay.BreakerOpen, f.State())

	// Blocked at the breaker, so the server is no longer hit.
	err := f.Forward(context.Background(), &models.InboundEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestForwarder_Forward_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	}))
	defer server.Close()

	f := relay.NewForwarder(webhookConfig(server.URL), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.Forward(ctx, &models.InboundEvent{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
