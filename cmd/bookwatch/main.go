package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alejandrodnm/bookwatch/config"
	"github.com/alejandrodnm/bookwatch/internal/adapters/binance"
	"github.com/alejandrodnm/bookwatch/internal/adapters/console"
	"github.com/alejandrodnm/bookwatch/internal/adapters/fixture"
	"github.com/alejandrodnm/bookwatch/internal/adapters/storage"
	"github.com/alejandrodnm/bookwatch/internal/clock"
	"github.com/alejandrodnm/bookwatch/internal/ports"
	"github.com/alejandrodnm/bookwatch/internal/strategy"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	pair := flag.String("pair", "", "trading pair, e.g. BTC-USDT (overrides config)")
	lines := flag.Int("lines", 0, "order book levels per side (overrides config)")
	dryRun := flag.Bool("dry-run", false, "use a local fixture connector instead of the real exchange")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *pair != "" {
		cfg.Viewer.TradingPair = *pair
	}
	if *lines > 0 {
		cfg.Viewer.Lines = *lines
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("bookwatch starting",
		"config", *configPath,
		"pair", cfg.Viewer.TradingPair,
		"lines", cfg.Viewer.Lines,
		"tick", cfg.TickInterval(),
		"dry_run", *dryRun,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var connector ports.Connector
	var feed *binance.Connector
	if *dryRun {
		connector = fixture.New(cfg.Viewer.TradingPair, 2*time.Second)
	} else {
		feed = binance.New(binance.Config{
			RESTBase:  cfg.Exchange.RESTBase,
			WSBase:    cfg.Exchange.WSBase,
			Pairs:     []string{cfg.Viewer.TradingPair},
			Depth:     cfg.Exchange.Depth,
			APIKey:    cfg.Exchange.APIKey,
			APISecret: cfg.Exchange.APISecret,
		}, slog.Default())
		connector = feed
	}

	var recorder ports.Recorder
	if cfg.Storage.DSN != "" {
		store, err := storage.NewSQLiteRecorder(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
		recorder = store
	}

	display := console.NewDisplay()
	notifier := console.NewNotifier()

	strat := strategy.New(strategy.Config{
		Exchange:    connector,
		TradingPair: cfg.Viewer.TradingPair,
		Lines:       cfg.Viewer.Lines,
	}, display, notifier, recorder, slog.Default())

	clk := clock.New(cfg.TickInterval(), strat, slog.Default())

	g, gctx := errgroup.WithContext(ctx)
	if feed != nil {
		g.Go(func() error { return feed.Start(gctx) })
	}
	g.Go(func() error { return clk.Run(gctx) })

	go watchStdin(display, cancel)

	err = g.Wait()
	strat.Stop()

	fmt.Println(strat.FormatStatus(context.Background()))

	if err != nil && ctx.Err() == nil {
		slog.Error("bookwatch exited with error", "err", err)
		os.Exit(1)
	}
	slog.Info("bookwatch stopped cleanly")
}

// watchStdin corta el live view con la primera entrada del usuario
// (escape o enter) y sale del programa con la segunda.
func watchStdin(display *console.Display, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if display.LiveUpdates() {
			display.SetLiveUpdates(false)
			continue
		}
		cancel()
		return
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
