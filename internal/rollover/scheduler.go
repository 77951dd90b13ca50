// Package rollover ticks the epoch manager on a fixed interval so a quiet
// channel still moves to the next epoch on time.
package rollover

import (
	"context"
	"log/slog"
	"time"
)

// Ticker advances the epoch manager to the current time.
type Ticker interface {
	Tick(ctx context.Context) error
}

// Scheduler calls Tick periodically. It keeps no state of its own: each
// tick asks the manager to catch up with the clock.
type Scheduler struct {
	interval time.Duration
	ticker   Ticker
}

// NewScheduler creates a scheduler. interval must be positive.
func NewScheduler(interval time.Duration, ticker Ticker) *Scheduler {
	if ticker == nil {
		panic("rollover: ticker must not be nil")
	}
	if interval <= 0 {
		panic("rollover: interval must be positive")
	}
	return &Scheduler{interval: interval, ticker: ticker}
}

// Start ticks once immediately, then every interval until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	slog.Info("[Scheduler] Starting rollover scheduler", "interval", s.interval)

	s.tick(ctx)
	for {
		select {
		case <-t.C:
			s.tick(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// tick failures are logged and retried on the next interval.
func (s *Scheduler) tick(ctx context.Context) {
	if err := s.ticker.Tick(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("[Scheduler] Rollover tick failed", "error", err)
	}
}
