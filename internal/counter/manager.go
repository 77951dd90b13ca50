package counter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
)

// Snapshot is the manager state captured under the lock.
type Snapshot struct {
	EpochID       int64
	CounterID     int64
	NextBoundary  time.Time
	HasRolledOver bool
	// RolledOver is true only when the call that produced this snapshot
	// moved the manager to a new bucket.
	RolledOver bool
}

// Report is what the report command renders.
type Report struct {
	Counter       epoch.Counter
	HasRolledOver bool
	Width         time.Duration
}

// Manager tracks which epoch is current and routes increments to its
// counter. All exported methods take the same mutex and hold it across
// storage calls, so a tick and the increment that follows it cannot be
// split by another goroutine.
type Manager struct {
	epochs   *EpochStore
	counters *CounterStore

	// onCount sees every count read or written for the current counter,
	// under mu, so observers never go backwards.
	onCount func(count uint64)

	mu            sync.Mutex
	epochID       int64
	counterID     int64
	nextBoundary  time.Time
	hasRolledOver bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithCountObserver registers fn to receive the current counter's count
// whenever the manager resolves, reads or increments it.
func WithCountObserver(fn func(count uint64)) Option {
	return func(m *Manager) {
		m.onCount = fn
	}
}

// Initialize resolves the epoch and counter for now and returns a manager
// tracking them.
func Initialize(ctx context.Context, epochs *EpochStore, counters *CounterStore, now time.Time, width time.Duration, opts ...Option) (*Manager, error) {
	if epochs == nil || counters == nil {
		panic("counter: stores must not be nil")
	}

	m := &Manager{epochs: epochs, counters: counters}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.resolve(ctx, now, width); err != nil {
		return nil, fmt.Errorf("initialize counter manager: %w", err)
	}

	slog.Info("[Manager] Initialized",
		"epoch_id", m.epochID,
		"counter_id", m.counterID,
		"next_boundary", m.nextBoundary,
		"width", width)
	return m, nil
}

// resolve runs find-or-create epoch, get-or-create counter and next
// boundary against now. State is only replaced when all three succeed.
// Caller must hold m.mu (or own m exclusively).
func (m *Manager) resolve(ctx context.Context, now time.Time, width time.Duration) error {
	e, err := m.epochs.FindOrCreate(ctx, now, width)
	if err != nil {
		return err
	}

	c, err := m.counters.GetOrCreateForEpoch(ctx, e.ID)
	if err != nil {
		return err
	}

	next, err := m.epochs.NextBoundaryAfter(ctx, e.ID, width)
	if err != nil {
		return err
	}

	m.epochID = e.ID
	m.counterID = c.ID
	m.nextBoundary = next
	m.observe(c)
	return nil
}

// observe must be called with m.mu held. Counters other than the current
// one are ignored.
func (m *Manager) observe(c epoch.Counter) {
	if m.onCount == nil || c.ID != m.counterID {
		return
	}
	m.onCount(c.Count)
}

// observed passes a successful result through observe.
func (m *Manager) observed(c epoch.Counter, err error) (epoch.Counter, error) {
	if err == nil {
		m.observe(c)
	}
	return c, err
}

// tick must be called with m.mu held.
func (m *Manager) tick(ctx context.Context, now time.Time, width time.Duration) (bool, error) {
	if !now.After(m.nextBoundary) {
		return false, nil
	}

	previous := m.epochID
	if err := m.resolve(ctx, now, width); err != nil {
		return false, fmt.Errorf("roll over from epoch %d: %w", previous, err)
	}
	m.hasRolledOver = true

	slog.Info("[Manager] Rolled over to new epoch",
		"from_epoch_id", previous,
		"epoch_id", m.epochID,
		"counter_id", m.counterID,
		"next_boundary", m.nextBoundary)
	return true, nil
}

func (m *Manager) snapshot(rolledOver bool) Snapshot {
	return Snapshot{
		EpochID:       m.epochID,
		CounterID:     m.counterID,
		NextBoundary:  m.nextBoundary,
		HasRolledOver: m.hasRolledOver,
		RolledOver:    rolledOver,
	}
}

// Tick rolls over to the bucket of now once now is past the current
// boundary. A no-op otherwise.
func (m *Manager) Tick(ctx context.Context, now time.Time, width time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.tick(ctx, now, width)
	return err
}

// Increment adds one to the current counter.
func (m *Manager) Increment(ctx context.Context) (epoch.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.observed(m.counters.Increment(ctx, m.counterID))
}

// CurrentCount re-reads the current counter from storage.
func (m *Manager) CurrentCount(ctx context.Context) (epoch.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.observed(m.counters.GetOrCreateForEpoch(ctx, m.epochID))
}

// HasRolledOver reports whether the manager has ever changed bucket.
func (m *Manager) HasRolledOver() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.hasRolledOver
}

// State returns the current snapshot without touching storage.
func (m *Manager) State() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshot(false)
}

// TickAndIncrement ticks then increments under one lock acquisition.
func (m *Manager) TickAndIncrement(ctx context.Context, now time.Time, width time.Duration) (epoch.Counter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.tick(ctx, now, width); err != nil {
		return epoch.Counter{}, err
	}
	return m.observed(m.counters.Increment(ctx, m.counterID))
}

// Observe ticks and captures the counter that is current at now. Pass the
// snapshot to IncrementObserved once the reply has gone out.
func (m *Manager) Observe(ctx context.Context, now time.Time, width time.Duration) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rolled, err := m.tick(ctx, now, width)
	if err != nil {
		return Snapshot{}, err
	}
	return m.snapshot(rolled), nil
}

// IncrementObserved increments the counter captured by Observe, even if the
// manager has since rolled over to a newer bucket.
func (m *Manager) IncrementObserved(ctx context.Context, snap Snapshot) (epoch.Counter, error) {
	if snap.CounterID == 0 {
		return epoch.Counter{}, fmt.Errorf("snapshot has no counter: %w", epoch.ErrCounterNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.observed(m.counters.Increment(ctx, snap.CounterID))
}

// Report ticks and returns the current count with the rollover flag.
func (m *Manager) Report(ctx context.Context, now time.Time, width time.Duration) (Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.tick(ctx, now, width); err != nil {
		return Report{}, err
	}

	c, err := m.observed(m.counters.GetOrCreateForEpoch(ctx, m.epochID))
	if err != nil {
		return Report{}, err
	}

	return Report{Counter: c, HasRolledOver: m.hasRolledOver, Width: width}, nil
}
