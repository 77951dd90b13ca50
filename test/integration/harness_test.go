//go:build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dadbot-lab/dadbot/internal/bot"
	"github.com/dadbot-lab/dadbot/internal/core/storage/postgres"
	"github.com/dadbot-lab/dadbot/internal/counter"
	"github.com/dadbot-lab/dadbot/internal/migrations"
	"github.com/dadbot-lab/dadbot/internal/server"
	"github.com/dadbot-lab/dadbot/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const width = 24 * time.Hour

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type chatLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *chatLog) Send(_ context.Context, _ string, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, text)
	return nil
}

func (l *chatLog) last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

type integrationHarness struct {
	baseURL    string
	client     *http.Client
	db         *sql.DB
	adapter    *postgres.Adapter
	manager    *counter.Manager
	handler    *bot.Handler
	chat       *chatLog
	clock      *stepClock
	cancel     context.CancelFunc
	serverDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case <-h.serverDone:
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}
	require.NoError(t, h.adapter.Close())
}

func openDatabase(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DADBOT_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("DADBOT_TEST_PG_DSN not set")
	}

	db, err := postgres.Open(dsn, 10, 10)
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db, migrations.DialectPostgres, true))
	require.NoError(t, resetDatabase(t, db))
	return db
}

func startHarness(t *testing.T, start time.Time) *integrationHarness {
	t.Helper()

	db := openDatabase(t)
	adapter, err := postgres.NewAdapter(db)
	require.NoError(t, err)

	clock := &stepClock{now: start}
	manager, err := counter.Initialize(context.Background(),
		counter.NewEpochStore(adapter), counter.NewCounterStore(adapter, adapter), clock.Now(), width)
	require.NoError(t, err)

	responder, err := bot.NewResponder(bot.DefaultDaddedPattern)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	chat := &chatLog{}
	handler := bot.NewHandler(bot.Options{Name: "Dad", CommandPrefix: "!", Width: width},
		manager, responder, bot.NewRoller(bot.ReplyChance(0), bot.LoveChance(0), nil),
		chat, clock, telemetry.NewMetrics(reg))

	addr := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	srv := server.New(addr, "release", adapter, handler, reg)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	go func() { serverDone <- srv.Run(ctx) }()

	h := &integrationHarness{
		baseURL:    "http://" + addr,
		client:     &http.Client{Timeout: 5 * time.Second},
		db:         db,
		adapter:    adapter,
		manager:    manager,
		handler:    handler,
		chat:       chat,
		clock:      clock,
		cancel:     cancel,
		serverDone: serverDone,
	}

	require.Eventually(t, func() bool {
		resp, err := h.client.Get(h.baseURL + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	return h
}

func resetDatabase(t *testing.T, db *sql.DB) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `TRUNCATE TABLE got_dadded, epochs RESTART IDENTITY CASCADE`)
	return err
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}
