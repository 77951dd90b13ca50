package counter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, repo *memRepo, now time.Time, width time.Duration) *Manager {
	t.Helper()

	m, err := Initialize(context.Background(), NewEpochStore(repo), NewCounterStore(repo, repo), now, width)
	require.NoError(t, err)
	return m
}

func TestManager_EndToEnd(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 15, 10, 300_000_000, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)

	c, err := m.CurrentCount(ctx)
	require.NoError(t, err)
	require.Zero(t, c.Count)
	require.False(t, m.HasRolledOver())

	require.NoError(t, m.Tick(ctx, start.Add(day), day))
	require.True(t, m.HasRolledOver())

	report, err := m.Report(ctx, start.Add(day), day)
	require.NoError(t, err)
	require.Zero(t, report.Counter.Count)
	require.True(t, report.HasRolledOver)
	require.Equal(t, day, report.Width)

	c, err = m.Increment(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(1), c.Count)
}

func TestManager_Initialize(t *testing.T) {
	start := time.Date(2022, 4, 1, 19, 15, 10, 0, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)

	state := m.State()
	require.NotZero(t, state.EpochID)
	require.NotZero(t, state.CounterID)
	require.Equal(t, time.Date(2022, 4, 2, 0, 0, 0, 0, time.UTC), state.NextBoundary)
	require.False(t, state.HasRolledOver)
}

func TestManager_Initialize_InvalidWidth(t *testing.T) {
	repo := newMemRepo()
	_, err := Initialize(context.Background(), NewEpochStore(repo), NewCounterStore(repo, repo), time.Now(), -time.Hour)
	require.ErrorIs(t, err, epoch.ErrInvalidWidth)
}

func TestManager_Tick_AtBoundaryIsNoop(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)
	before := m.State()

	require.NoError(t, m.Tick(ctx, before.NextBoundary, day))
	require.Equal(t, before, m.State())
	require.False(t, m.HasRolledOver())
}

func TestManager_Tick_RolloverResetsCount(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)

	for i := 0; i < 3; i++ {
		_, err := m.Increment(ctx)
		require.NoError(t, err)
	}
	before := m.State()

	require.NoError(t, m.Tick(ctx, start.Add(day), day))
	after := m.State()
	require.NotEqual(t, before.EpochID, after.EpochID)
	require.NotEqual(t, before.CounterID, after.CounterID)
	require.Equal(t, time.Date(2022, 4, 3, 0, 0, 0, 0, time.UTC), after.NextBoundary)

	c, err := m.CurrentCount(ctx)
	require.NoError(t, err)
	require.Zero(t, c.Count)
}

func TestManager_HasRolledOverIsSticky(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)

	require.NoError(t, m.Tick(ctx, start.Add(day), day))
	require.True(t, m.HasRolledOver())

	require.NoError(t, m.Tick(ctx, start.Add(day+time.Minute), day))
	require.True(t, m.HasRolledOver())
}

func TestManager_Tick_SkipsEmptyBuckets(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	repo := newMemRepo()
	m := newTestManager(t, repo, start, day)

	require.NoError(t, m.Tick(ctx, start.Add(10*day), day))
	require.Equal(t, time.Date(2022, 4, 12, 0, 0, 0, 0, time.UTC), m.State().NextBoundary)
	require.Equal(t, 2, repo.epochCount())
}

func TestManager_WidthChangeReusesExistingEpochs(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.seedEpoch(time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC))
	later := repo.seedEpoch(time.Date(2022, 4, 1, 12, 0, 0, 0, time.UTC))

	// Under a one-day width both epochs share a bucket.
	_, err := Initialize(ctx, NewEpochStore(repo), NewCounterStore(repo, repo), time.Date(2022, 4, 1, 9, 0, 0, 0, time.UTC), day)
	require.ErrorIs(t, err, epoch.ErrTooManyEpochs)

	// Under six hours they are separate buckets.
	m := newTestManager(t, repo, time.Date(2022, 4, 1, 9, 0, 0, 0, time.UTC), 6*time.Hour)
	require.Equal(t, time.Date(2022, 4, 1, 12, 0, 0, 0, time.UTC), m.State().NextBoundary)
	require.Equal(t, 3, repo.epochCount())

	require.NoError(t, m.Tick(ctx, time.Date(2022, 4, 1, 12, 30, 0, 0, time.UTC), 6*time.Hour))
	require.Equal(t, later.ID, m.State().EpochID)
	require.Equal(t, 3, repo.epochCount())
}

func TestManager_Increment_Monotonic(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, newMemRepo(), time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), day)

	var last uint64
	for i := 0; i < 10; i++ {
		c, err := m.Increment(ctx)
		require.NoError(t, err)
		require.Equal(t, last+1, c.Count)
		last = c.Count
	}
}

func TestManager_TickAndIncrement_Concurrent(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.TickAndIncrement(ctx, start.Add(time.Minute), day)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := m.CurrentCount(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(workers), c.Count)
}

func TestManager_IncrementObserved_LandsOnObservedBucket(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 23, 59, 0, 0, time.UTC)
	m := newTestManager(t, newMemRepo(), start, day)

	snap, err := m.Observe(ctx, start, day)
	require.NoError(t, err)
	require.False(t, snap.RolledOver)

	// Another message rolls the manager over before the reply is sent.
	rolled, err := m.Observe(ctx, start.Add(2*time.Minute), day)
	require.NoError(t, err)
	require.True(t, rolled.RolledOver)
	require.NotEqual(t, snap.CounterID, rolled.CounterID)

	c, err := m.IncrementObserved(ctx, snap)
	require.NoError(t, err)
	require.Equal(t, snap.CounterID, c.ID)
	require.Equal(t, uint64(1), c.Count)

	current, err := m.CurrentCount(ctx)
	require.NoError(t, err)
	require.Zero(t, current.Count)
}

func TestManager_IncrementObserved_EmptySnapshot(t *testing.T) {
	m := newTestManager(t, newMemRepo(), time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), day)

	_, err := m.IncrementObserved(context.Background(), Snapshot{})
	require.ErrorIs(t, err, epoch.ErrCounterNotFound)
}

// failingRepo fails epoch listing once armed.
type failingRepo struct {
	*memRepo
	fail bool
}

func (r *failingRepo) ListEpochsInRange(ctx context.Context, lower, upper time.Time) ([]epoch.Epoch, error) {
	if r.fail {
		return nil, errors.New("database is locked")
	}
	return r.memRepo.ListEpochsInRange(ctx, lower, upper)
}

func TestManager_Tick_FailureKeepsState(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	repo := &failingRepo{memRepo: newMemRepo()}
	m, err := Initialize(ctx, NewEpochStore(repo), NewCounterStore(repo, repo), start, day)
	require.NoError(t, err)
	before := m.State()

	repo.fail = true
	err = m.Tick(ctx, start.Add(day), day)
	require.Error(t, err)
	require.Equal(t, before, m.State())
	require.False(t, m.HasRolledOver())

	repo.fail = false
	require.NoError(t, m.Tick(ctx, start.Add(day), day))
	require.True(t, m.HasRolledOver())
}

// gaugeRecorder captures what a count observer was told.
type gaugeRecorder struct {
	mu     sync.Mutex
	values []uint64
}

func (g *gaugeRecorder) set(n uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values = append(g.values, n)
}

func (g *gaugeRecorder) last() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.values[len(g.values)-1]
}

func TestManager_CountObserver_FollowsResolvedCounter(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	gauge := &gaugeRecorder{}

	m, err := Initialize(ctx, NewEpochStore(repo), NewCounterStore(repo, repo), start, day, WithCountObserver(gauge.set))
	require.NoError(t, err)
	require.Equal(t, uint64(0), gauge.last())

	snap, err := m.Observe(ctx, start, day)
	require.NoError(t, err)
	_, err = m.IncrementObserved(ctx, snap)
	require.NoError(t, err)
	_, err = m.Increment(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), gauge.last())

	// A restart into the same bucket reports the stored count, not zero.
	restartGauge := &gaugeRecorder{}
	_, err = Initialize(ctx, NewEpochStore(repo), NewCounterStore(repo, repo), start.Add(time.Hour), day, WithCountObserver(restartGauge.set))
	require.NoError(t, err)
	require.Equal(t, uint64(2), restartGauge.last())

	// Rollover reports the new counter's count.
	rolled, err := m.Observe(ctx, start.Add(day), day)
	require.NoError(t, err)
	require.True(t, rolled.RolledOver)
	require.Equal(t, uint64(0), gauge.last())

	// A late increment on the previous bucket does not move the gauge.
	seen := len(gauge.values)
	c, err := m.IncrementObserved(ctx, snap)
	require.NoError(t, err)
	require.Equal(t, uint64(3), c.Count)
	require.Len(t, gauge.values, seen)
	require.Equal(t, uint64(0), gauge.last())
}

func TestManager_CountObserver_ConcurrentIncrementsNeverGoBackwards(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	start := time.Date(2022, 4, 1, 19, 0, 0, 0, time.UTC)
	gauge := &gaugeRecorder{}

	m, err := Initialize(ctx, NewEpochStore(repo), NewCounterStore(repo, repo), start, day, WithCountObserver(gauge.set))
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.TickAndIncrement(ctx, start.Add(time.Minute), day)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	gauge.mu.Lock()
	defer gauge.mu.Unlock()
	for i := 1; i < len(gauge.values); i++ {
		require.GreaterOrEqual(t, gauge.values[i], gauge.values[i-1])
	}
	require.Equal(t, uint64(workers), gauge.values[len(gauge.values)-1])
}
