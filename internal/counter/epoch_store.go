package counter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	"github.com/dadbot-lab/dadbot/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

// EpochStore finds and creates epochs over a storage.EpochRepository.
type EpochStore struct {
	repo        storage.EpochRepository
	createGroup singleflight.Group // Dedupe concurrent find-or-create per bucket
}

// NewEpochStore wraps repo.
func NewEpochStore(repo storage.EpochRepository) *EpochStore {
	if repo == nil {
		panic("counter: epoch repository must not be nil")
	}
	return &EpochStore{repo: repo}
}

// FindInRange returns persisted epochs with lower <= lower_bound < upper,
// ordered by lower_bound.
func (s *EpochStore) FindInRange(ctx context.Context, lower, upper time.Time) ([]epoch.Epoch, error) {
	epochs, err := s.repo.ListEpochsInRange(ctx, lower, upper)
	if err != nil {
		return nil, fmt.Errorf("find epochs in [%s, %s): %w", lower.UTC().Format(time.RFC3339), upper.UTC().Format(time.RFC3339), err)
	}
	return epochs, nil
}

// FindOrCreate returns the single epoch inside the canonical bucket of now,
// creating it at the bucket's lower bound when none exists.
func (s *EpochStore) FindOrCreate(ctx context.Context, now time.Time, width time.Duration) (epoch.Epoch, error) {
	bounds, err := epoch.BoundaryOf(now, width)
	if err != nil {
		return epoch.Epoch{}, err
	}

	// The shared call outlives any single caller's cancellation; each
	// caller still stops waiting when its own ctx is done.
	key := bucketKey(bounds)
	ch := s.createGroup.DoChan(key, func() (interface{}, error) {
		return s.findOrCreate(context.WithoutCancel(ctx), bounds)
	})

	select {
	case <-ctx.Done():
		return epoch.Epoch{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return epoch.Epoch{}, res.Err
		}
		if res.Shared {
			slog.Debug("[EpochStore] Shared concurrent find-or-create", "bucket", key)
		}
		return res.Val.(epoch.Epoch), nil
	}
}

func (s *EpochStore) findOrCreate(ctx context.Context, bounds epoch.Bounds) (epoch.Epoch, error) {
	found, err := s.single(ctx, bounds)
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, epoch.ErrEpochNotFound) {
		return epoch.Epoch{}, err
	}

	created, err := s.repo.InsertEpoch(ctx, bounds.Lower)
	if errors.Is(err, storage.ErrDuplicate) {
		// Another process created the bucket between our read and insert.
		slog.Debug("[EpochStore] Lost insert race, re-reading bucket", "lower_bound", bounds.Lower)
		return s.single(ctx, bounds)
	}
	if err != nil {
		return epoch.Epoch{}, fmt.Errorf("create epoch at %s: %w", bounds.Lower.Format(time.RFC3339), err)
	}

	slog.Info("[EpochStore] Created epoch",
		"epoch_id", created.ID,
		"lower_bound", created.LowerBound,
		"upper_bound", bounds.Upper)
	return created, nil
}

// single returns the only epoch in bounds, ErrEpochNotFound when there is
// none and ErrTooManyEpochs when there is more than one.
func (s *EpochStore) single(ctx context.Context, bounds epoch.Bounds) (epoch.Epoch, error) {
	epochs, err := s.FindInRange(ctx, bounds.Lower, bounds.Upper)
	if err != nil {
		return epoch.Epoch{}, err
	}

	switch len(epochs) {
	case 0:
		return epoch.Epoch{}, fmt.Errorf("bucket %s: %w", bounds.Lower.Format(time.RFC3339), epoch.ErrEpochNotFound)
	case 1:
		return epochs[0], nil
	default:
		ids := make([]int64, len(epochs))
		for i, e := range epochs {
			ids[i] = e.ID
		}
		return epoch.Epoch{}, fmt.Errorf("%w: %d epochs %v in bucket [%s, %s)",
			epoch.ErrTooManyEpochs, len(epochs), ids,
			bounds.Lower.Format(time.RFC3339), bounds.Upper.Format(time.RFC3339))
	}
}

// NextBoundaryAfter returns when the bucket holding epochID ends: the
// earliest lower bound among the other epochs inside the same canonical
// bucket, or the canonical upper bound when there is none.
func (s *EpochStore) NextBoundaryAfter(ctx context.Context, epochID int64, width time.Duration) (time.Time, error) {
	current, err := s.repo.GetEpoch(ctx, epochID)
	if err != nil {
		return time.Time{}, err
	}

	bounds, err := epoch.BoundaryOf(current.LowerBound, width)
	if err != nil {
		return time.Time{}, err
	}

	neighbours, err := s.FindInRange(ctx, bounds.Lower, bounds.Upper)
	if err != nil {
		return time.Time{}, err
	}

	var (
		next  time.Time
		found bool
	)
	for _, e := range neighbours {
		if e.ID == current.ID {
			continue
		}
		if !found || e.LowerBound.Before(next) {
			next, found = e.LowerBound, true
		}
	}
	if !found {
		return bounds.Upper, nil
	}

	return next, nil
}

func bucketKey(b epoch.Bounds) string {
	return strconv.FormatInt(b.Lower.UnixNano(), 10) + ":" + strconv.FormatInt(b.Upper.UnixNano(), 10)
}
