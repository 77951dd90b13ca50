package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dadbot-lab/dadbot/internal/core/epoch"
	"github.com/dadbot-lab/dadbot/internal/core/storage"
	_ "modernc.org/sqlite"
)

// Adapter implements storage.Repository on an embedded SQLite file.
type Adapter struct {
	db *sql.DB
}

var _ storage.Repository = (*Adapter)(nil)

// Open opens the SQLite database at path, creating parent directories as
// needed. SQLite allows a single writer, so the pool is pinned to one
// connection.
func Open(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite data dir: %w", err)
		}
	}

	dsn := path + "?" + url.Values{
		"_pragma": []string{
			"foreign_keys(1)",
			"busy_timeout(5000)",
			"journal_mode(WAL)",
			"synchronous(NORMAL)",
		},
	}.Encode()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	slog.Info("[SQLite] Database opened", "path", path)
	return db, nil
}

// NewAdapter wraps an already migrated database.
func NewAdapter(db *sql.DB) (*Adapter, error) {
	for _, table := range []string{"epochs", "got_dadded"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schema validation failed - did you run migrations?: %s table does not exist", table)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check schema: %w", err)
		}
	}
	return &Adapter{db: db}, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEpoch(row scanner) (epoch.Epoch, error) {
	var (
		e  epoch.Epoch
		ms int64
	)
	if err := row.Scan(&e.ID, &ms); err != nil {
		return epoch.Epoch{}, err
	}
	e.LowerBound = time.UnixMilli(ms).UTC()
	return e, nil
}

func scanCounter(row scanner) (epoch.Counter, error) {
	var (
		c     epoch.Counter
		count int64
	)
	if err := row.Scan(&c.ID, &c.EpochID, &count); err != nil {
		return epoch.Counter{}, err
	}
	if count < 0 {
		return epoch.Counter{}, fmt.Errorf("counter %d has negative count %d", c.ID, count)
	}
	c.Count = uint64(count)
	return c, nil
}

// ListEpochsInRange returns epochs with lower <= lower_bound < upper.
func (a *Adapter) ListEpochsInRange(ctx context.Context, lower, upper time.Time) ([]epoch.Epoch, error) {
	rows, err := a.db.QueryContext(ctx, queryListEpochsInRange, toMillis(lower), toMillis(upper))
	if err != nil {
		return nil, fmt.Errorf("query epochs: %w", err)
	}
	defer rows.Close()

	var epochs []epoch.Epoch
	for rows.Next() {
		e, err := scanEpoch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan epoch: %w", err)
		}
		epochs = append(epochs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate epochs: %w", err)
	}
	return epochs, nil
}

func (a *Adapter) GetEpoch(ctx context.Context, id int64) (epoch.Epoch, error) {
	e, err := scanEpoch(a.db.QueryRowContext(ctx, queryGetEpoch, id))
	if errors.Is(err, sql.ErrNoRows) {
		return epoch.Epoch{}, fmt.Errorf("epoch %d: %w", id, epoch.ErrEpochNotFound)
	}
	if err != nil {
		return epoch.Epoch{}, fmt.Errorf("get epoch %d: %w", id, err)
	}
	return e, nil
}

func (a *Adapter) InsertEpoch(ctx context.Context, lowerBound time.Time) (epoch.Epoch, error) {
	e, err := scanEpoch(a.db.QueryRowContext(ctx, queryInsertEpoch, toMillis(lowerBound)))
	if errors.Is(err, sql.ErrNoRows) {
		return epoch.Epoch{}, storage.ErrDuplicate
	}
	if err != nil {
		return epoch.Epoch{}, fmt.Errorf("insert epoch: %w", err)
	}
	slog.Debug("[SQLite] Created epoch", "epoch_id", e.ID, "lower_bound", e.LowerBound)
	return e, nil
}

func (a *Adapter) GetCounterByEpoch(ctx context.Context, epochID int64) (epoch.Counter, error) {
	c, err := scanCounter(a.db.QueryRowContext(ctx, queryGetCounterByEpoch, epochID))
	if errors.Is(err, sql.ErrNoRows) {
		return epoch.Counter{}, fmt.Errorf("counter for epoch %d: %w", epochID, epoch.ErrCounterNotFound)
	}
	if err != nil {
		return epoch.Counter{}, fmt.Errorf("get counter for epoch %d: %w", epochID, err)
	}
	return c, nil
}

func (a *Adapter) GetCounter(ctx context.Context, id int64) (epoch.Counter, error) {
	c, err := scanCounter(a.db.QueryRowContext(ctx, queryGetCounter, id))
	if errors.Is(err, sql.ErrNoRows) {
		return epoch.Counter{}, fmt.Errorf("counter %d: %w", id, epoch.ErrCounterNotFound)
	}
	if err != nil {
		return epoch.Counter{}, fmt.Errorf("get counter %d: %w", id, err)
	}
	return c, nil
}

func (a *Adapter) InsertCounter(ctx context.Context, epochID int64) (epoch.Counter, error) {
	c, err := scanCounter(a.db.QueryRowContext(ctx, queryInsertCounter, epochID))
	if errors.Is(err, sql.ErrNoRows) {
		return epoch.Counter{}, storage.ErrDuplicate
	}
	if err != nil {
		return epoch.Counter{}, fmt.Errorf("insert counter for epoch %d: %w", epochID, err)
	}
	slog.Debug("[SQLite] Created counter", "counter_id", c.ID, "epoch_id", c.EpochID)
	return c, nil
}

func (a *Adapter) UpdateCounterCount(ctx context.Context, id int64, count uint64) (epoch.Counter, error) {
	if count > math.MaxInt64 {
		return epoch.Counter{}, fmt.Errorf("count %d overflows INTEGER", count)
	}
	c, err := scanCounter(a.db.QueryRowContext(ctx, queryUpdateCounterCount, int64(count), id))
	if errors.Is(err, sql.ErrNoRows) {
		return epoch.Counter{}, fmt.Errorf("counter %d: %w", id, epoch.ErrCounterNotFound)
	}
	if err != nil {
		return epoch.Counter{}, fmt.Errorf("update counter %d: %w", id, err)
	}
	return c, nil
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *Adapter) DB() *sql.DB {
	return a.db
}

func (a *Adapter) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close sqlite database: %w", err)
	}
	slog.Info("[SQLite] Adapter closed")
	return nil
}
