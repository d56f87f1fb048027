// Package whatsapp defines the client interface the gateway sends through,
// the connection-state gate that guards it, and the whatsmeow-backed
// implementation of both.
package whatsapp

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// ConnState is the lifecycle state of the outbound channel.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateAuthenticating
	StateReady
)

func (s ConnState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateReady:
		return "ready"
	default:
		return "disconnected"
	}
}

// Gate owns the process-wide connection state. It starts Disconnected and
// is mutated only by client lifecycle events; everything else reads it.
type Gate struct {
	state  atomic.Int32
	logger *zap.Logger
}

func NewGate(logger *zap.Logger) *Gate {
	return &Gate{logger: logger}
}

// Set records a lifecycle transition.
func (g *Gate) Set(next ConnState) {
	prev := ConnState(g.state.Swap(int32(next)))
	if prev != next {
		g.logger.Info("Connection state changed",
			zap.String("from", prev.String()),
			zap.String("to", next.String()))
	}
}

// State returns the current connection state.
func (g *Gate) State() ConnState {
	return ConnState(g.state.Load())
}

// Ready reports whether sends may be attempted.
func (g *Gate) Ready() bool {
	return g.State() == StateReady
}
