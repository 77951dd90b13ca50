package storage

import (
	"context"
	"errors"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
)

// ErrDuplicate is returned when an insert hits a unique index
// (epochs.lower_bound or got_dadded.epoch_id) and no row was written.
var ErrDuplicate = errors.New("row already exists")

// EpochRepository is the persistence surface for epochs.
type EpochRepository interface {
	// ListEpochsInRange returns epochs with lower <= lower_bound < upper,
	// ordered by lower_bound ASC then id ASC.
	ListEpochsInRange(ctx context.Context, lower, upper time.Time) ([]epoch.Epoch, error)

	// GetEpoch returns epoch.ErrEpochNotFound when id does not exist.
	GetEpoch(ctx context.Context, id int64) (epoch.Epoch, error)

	// InsertEpoch returns ErrDuplicate when lowerBound is already taken.
	InsertEpoch(ctx context.Context, lowerBound time.Time) (epoch.Epoch, error)
}

// CounterRepository is the persistence surface for per-epoch counters.
type CounterRepository interface {
	// GetCounterByEpoch returns epoch.ErrCounterNotFound when the epoch has no counter yet.
	GetCounterByEpoch(ctx context.Context, epochID int64) (epoch.Counter, error)

	// GetCounter returns epoch.ErrCounterNotFound when id does not exist.
	GetCounter(ctx context.Context, id int64) (epoch.Counter, error)

	// InsertCounter creates a zero counter; ErrDuplicate if the epoch already has one.
	InsertCounter(ctx context.Context, epochID int64) (epoch.Counter, error)

	// UpdateCounterCount overwrites count and returns the stored row.
	UpdateCounterCount(ctx context.Context, id int64, count uint64) (epoch.Counter, error)
}

// Repository is what a storage adapter provides to the rest of the bot.
type Repository interface {
	EpochRepository
	CounterRepository

	Ping(ctx context.Context) error
	Close() error
}
