// Package reconnect restarts a dropped gateway connection.
package reconnect

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

// CheckInterval is how often the transport health is polled.
const CheckInterval = time.Second

// Transport is the connection being supervised.
type Transport interface {
	// Started reports whether the initial connection has completed.
	Started() bool
	// Closed reports whether the connection is currently down.
	Closed() bool
	Restart(ctx context.Context) error
}

type Outcome int

const (
	OutcomeNotStarted Outcome = iota
	OutcomeHealthy
	// OutcomeBusy means a restart from an earlier tick is still running.
	OutcomeBusy
	OutcomeRestarted
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotStarted:
		return "not_started"
	case OutcomeHealthy:
		return "healthy"
	case OutcomeBusy:
		return "busy"
	case OutcomeRestarted:
		return "restarted"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

type Supervisor struct {
	transport Transport
	interval  time.Duration
	guard     *semaphore.Weighted
	onRestart func(Outcome, error)
}

type Option func(*Supervisor)

func WithInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithRestartHook is called after every restart attempt with its outcome.
func WithRestartHook(fn func(Outcome, error)) Option {
	return func(s *Supervisor) {
		s.onRestart = fn
	}
}

func NewSupervisor(transport Transport, opts ...Option) *Supervisor {
	s := &Supervisor{
		transport: transport,
		interval:  CheckInterval,
		guard:     semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run checks the transport every interval until ctx is done. Each check runs
// on its own goroutine so a restart that hangs never delays the next tick.
func (s *Supervisor) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	slog.Info("Reconnect supervisor started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go s.Tick(ctx)
		}
	}
}

// Tick performs one health check and restarts the transport if it is down
// and no other restart is in flight.
func (s *Supervisor) Tick(ctx context.Context) Outcome {
	slog.Debug("Checking disconnect status...")
	if !s.transport.Started() {
		slog.Debug("Transport not started yet")
		return OutcomeNotStarted
	}
	if !s.transport.Closed() {
		return OutcomeHealthy
	}
	if !s.guard.TryAcquire(1) {
		slog.Debug("Restart already in progress")
		return OutcomeBusy
	}
	defer s.guard.Release(1)

	slog.Warn("Disconnected, attempting reconnect...")
	outcome := OutcomeRestarted
	err := s.transport.Restart(ctx)
	if err != nil {
		outcome = OutcomeFailed
		slog.With("error", err).Error("Error restarting connection")
	}
	if s.onRestart != nil {
		s.onRestart(outcome, err)
	}
	return outcome
}
