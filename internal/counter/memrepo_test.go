package counter

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	"github.com/dadbot-lab/dadbot/internal/core/storage"
)

// memRepo is an in-memory storage.Repository with the same unique indexes
// as the real schema.
type memRepo struct {
	mu       sync.Mutex
	epochs   []epoch.Epoch
	counters []epoch.Counter
	nextID   int64
}

var _ storage.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{}
}

func (r *memRepo) id() int64 {
	r.nextID++
	return r.nextID
}

// seedEpoch bypasses the store so tests can create irregular buckets.
func (r *memRepo) seedEpoch(lowerBound time.Time) epoch.Epoch {
	e, err := r.InsertEpoch(context.Background(), lowerBound)
	if err != nil {
		panic(err)
	}
	return e
}

func (r *memRepo) ListEpochsInRange(_ context.Context, lower, upper time.Time) ([]epoch.Epoch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []epoch.Epoch
	for _, e := range r.epochs {
		if !e.LowerBound.Before(lower) && e.LowerBound.Before(upper) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LowerBound.Equal(out[j].LowerBound) {
			return out[i].ID < out[j].ID
		}
		return out[i].LowerBound.Before(out[j].LowerBound)
	})
	return out, nil
}

func (r *memRepo) GetEpoch(_ context.Context, id int64) (epoch.Epoch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.epochs {
		if e.ID == id {
			return e, nil
		}
	}
	return epoch.Epoch{}, epoch.ErrEpochNotFound
}

func (r *memRepo) InsertEpoch(_ context.Context, lowerBound time.Time) (epoch.Epoch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.epochs {
		if e.LowerBound.Equal(lowerBound) {
			return epoch.Epoch{}, storage.ErrDuplicate
		}
	}
	e := epoch.Epoch{ID: r.id(), LowerBound: lowerBound.UTC()}
	r.epochs = append(r.epochs, e)
	return e, nil
}

func (r *memRepo) GetCounterByEpoch(_ context.Context, epochID int64) (epoch.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.counters {
		if c.EpochID == epochID {
			return c, nil
		}
	}
	return epoch.Counter{}, epoch.ErrCounterNotFound
}

func (r *memRepo) GetCounter(_ context.Context, id int64) (epoch.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.counters {
		if c.ID == id {
			return c, nil
		}
	}
	return epoch.Counter{}, epoch.ErrCounterNotFound
}

func (r *memRepo) InsertCounter(_ context.Context, epochID int64) (epoch.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.counters {
		if c.EpochID == epochID {
			return epoch.Counter{}, storage.ErrDuplicate
		}
	}
	c := epoch.Counter{ID: r.id(), EpochID: epochID}
	r.counters = append(r.counters, c)
	return c, nil
}

func (r *memRepo) UpdateCounterCount(_ context.Context, id int64, count uint64) (epoch.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.counters {
		if c.ID == id {
			r.counters[i].Count = count
			return r.counters[i], nil
		}
	}
	return epoch.Counter{}, epoch.ErrCounterNotFound
}

func (r *memRepo) Ping(context.Context) error { return nil }

func (r *memRepo) Close() error { return nil }

func (r *memRepo) epochCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.epochs)
}
