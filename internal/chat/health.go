package chat

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the AI backend connectivity state shown on the dashboard.
type State string

const (
	StateUnknown      State = "unknown"
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
)

// Pinger is the probe the poller runs; pkg/anthropic.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthPoller probes the AI backend on an interval and exposes the last
// observed state. A failed probe flips the state and waits for the next
// tick; there is no retry inside a tick.
type HealthPoller struct {
	pinger   Pinger
	interval time.Duration

	mu    sync.RWMutex
	state State
}

// NewHealthPoller creates a poller in the unknown state. Interval defaults
// to 30 seconds.
func NewHealthPoller(pinger Pinger, interval time.Duration) *HealthPoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HealthPoller{
		pinger:   pinger,
		interval: interval,
		state:    StateUnknown,
	}
}

// State returns the last observed backend state.
func (p *HealthPoller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Run probes immediately, then on every tick until ctx is cancelled.
func (p *HealthPoller) Run(ctx context.Context) {
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *HealthPoller) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	next := StateConnected
	if err := p.pinger.Ping(probeCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		next = StateDisconnected
		zap.L().Warn("chat: ai backend probe failed", zap.Error(err))
	}

	p.mu.Lock()
	changed := p.state != next
	p.state = next
	p.mu.Unlock()

	if changed {
		zap.L().Info("chat: ai backend state changed", zap.String("state", string(next)))
	}
}
