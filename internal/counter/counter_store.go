package counter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	"github.com/dadbot-lab/dadbot/internal/core/storage"
)

// CounterStore manages the one counter attached to each epoch.
type CounterStore struct {
	epochs   storage.EpochRepository
	counters storage.CounterRepository
}

// NewCounterStore needs the epoch repository to check that an epoch exists
// before attaching a counter to it.
func NewCounterStore(epochs storage.EpochRepository, counters storage.CounterRepository) *CounterStore {
	if epochs == nil {
		panic("counter: epoch repository must not be nil")
	}
	if counters == nil {
		panic("counter: counter repository must not be nil")
	}
	return &CounterStore{epochs: epochs, counters: counters}
}

// GetOrCreateForEpoch returns the counter for epochID, creating it at zero
// when missing. Returns epoch.ErrEpochNotFound when the epoch is absent.
func (s *CounterStore) GetOrCreateForEpoch(ctx context.Context, epochID int64) (epoch.Counter, error) {
	if _, err := s.epochs.GetEpoch(ctx, epochID); err != nil {
		return epoch.Counter{}, err
	}

	c, err := s.counters.GetCounterByEpoch(ctx, epochID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, epoch.ErrCounterNotFound) {
		return epoch.Counter{}, err
	}

	c, err = s.counters.InsertCounter(ctx, epochID)
	if errors.Is(err, storage.ErrDuplicate) {
		return s.counters.GetCounterByEpoch(ctx, epochID)
	}
	if err != nil {
		return epoch.Counter{}, fmt.Errorf("create counter for epoch %d: %w", epochID, err)
	}

	slog.Info("[CounterStore] Created counter", "counter_id", c.ID, "epoch_id", epochID)
	return c, nil
}

// Increment reads the counter and writes count+1. It is not atomic across
// callers; the Manager serializes access.
func (s *CounterStore) Increment(ctx context.Context, counterID int64) (epoch.Counter, error) {
	c, err := s.counters.GetCounter(ctx, counterID)
	if err != nil {
		return epoch.Counter{}, err
	}

	updated, err := s.counters.UpdateCounterCount(ctx, counterID, c.Count+1)
	if err != nil {
		return epoch.Counter{}, err
	}

	slog.Debug("[CounterStore] Incremented counter", "counter_id", counterID, "count", updated.Count)
	return updated, nil
}
