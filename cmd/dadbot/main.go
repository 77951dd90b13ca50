package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dadbot-lab/dadbot/internal/bot"
	"github.com/dadbot-lab/dadbot/internal/chat/twitch"
	corecfg "github.com/dadbot-lab/dadbot/internal/core/config"
	"github.com/dadbot-lab/dadbot/internal/core/storage"
	"github.com/dadbot-lab/dadbot/internal/core/storage/postgres"
	"github.com/dadbot-lab/dadbot/internal/core/storage/sqlite"
	"github.com/dadbot-lab/dadbot/internal/counter"
	"github.com/dadbot-lab/dadbot/internal/migrations"
	"github.com/dadbot-lab/dadbot/internal/rollover"
	"github.com/dadbot-lab/dadbot/internal/server"
	"github.com/dadbot-lab/dadbot/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// repoOpener opens and migrates the configured database.
type repoOpener func(cfg corecfg.DatabaseConfig) (storage.Repository, error)

func main() {
	os.Exit(run(os.Args[1:], openRepository))
}

// run wires and starts the bot and returns the process exit code. Deferred
// cleanup has run by the time it returns.
func run(args []string, open repoOpener) int {
	fs := flag.NewFlagSet("dadbot", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file (optional)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}

	// 2. Initialize Logger
	logger, err := telemetry.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		return 1
	}
	slog.SetDefault(logger)
	slog.Info("Loaded config",
		"name", cfg.Bot.Name,
		"epoch_width", cfg.Bot.EpochWidthDuration(),
		"database", cfg.Database.Type,
		"channels", cfg.Twitch.Channels,
	)

	// 3. Initialize Storage and run migrations
	repo, err := open(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer func() {
		if err := repo.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 4. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(reg)

	// 5. Initialize Epoch Manager
	width := cfg.Bot.EpochWidthDuration()
	clock := bot.RealClock{}
	manager, err := counter.Initialize(ctx,
		counter.NewEpochStore(repo),
		counter.NewCounterStore(repo, repo),
		clock.Now(), width,
		counter.WithCountObserver(metrics.SetCurrentCount),
	)
	if err != nil {
		slog.Error("Failed to initialize epoch manager", "error", err)
		return 1
	}
	state := manager.State()
	slog.Info("Epoch manager initialized", "epoch_id", state.EpochID, "counter_id", state.CounterID, "next_boundary", state.NextBoundary)

	// 6. Chat transport and handler
	pattern := cfg.Bot.DaddedRegex
	if pattern == "" {
		pattern = bot.DefaultDaddedPattern
	}
	responder, err := bot.NewResponder(pattern)
	if err != nil {
		slog.Error("Invalid dadded regex", "error", err)
		return 1
	}
	roller := bot.NewRoller(bot.ReplyChance(cfg.Bot.DaddedChance), bot.LoveChance(cfg.Bot.LoveMeChance), nil)

	chat, err := twitch.NewClient(cfg.Twitch.Username, cfg.Twitch.OAuthToken, cfg.Twitch.Channels)
	if err != nil {
		slog.Error("Failed to initialize twitch client", "error", err)
		return 1
	}

	handler := bot.NewHandler(bot.Options{
		Name:          cfg.Bot.Name,
		CommandPrefix: cfg.Bot.CommandPrefix,
		Width:         width,
	}, manager, responder, roller, chat, clock, metrics)

	// 7. Start Services
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return chat.Run(gctx, handler)
	})
	if interval := cfg.Bot.TickIntervalDuration(); interval > 0 {
		scheduler := rollover.NewScheduler(interval, handler)
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
	}
	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Addr(), cfg.Server.Mode, repo, handler, reg)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	} else {
		slog.Info("HTTP server disabled by config")
	}

	if err := g.Wait(); err != nil {
		slog.Error("Stopped with error", "error", err)
		return 1
	}
	slog.Info("Shutdown complete")
	return 0
}

// openRepository opens the configured database, migrates it and returns the
// matching adapter.
func openRepository(cfg corecfg.DatabaseConfig) (storage.Repository, error) {
	switch cfg.Type {
	case "postgres":
		db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(db, migrations.DialectPostgres, cfg.AutoMigrate); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		adapter, err := postgres.NewAdapter(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return adapter, nil
	case "sqlite":
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(db, migrations.DialectSQLite, cfg.AutoMigrate); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		adapter, err := sqlite.NewAdapter(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return adapter, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}
