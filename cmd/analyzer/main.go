package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"playstore_analyzer/internal/config"
	"playstore_analyzer/internal/export"
	"playstore_analyzer/internal/relay"
	"playstore_analyzer/internal/scheduler"
	"playstore_analyzer/internal/service"
	"playstore_analyzer/internal/source/playstore"
	"playstore_analyzer/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	appID := flag.String("app", "", "app package name, e.g. com.whatsapp")
	watch := flag.Duration("watch", 0, "re-run the analysis on this interval (0 runs once)")
	showHistory := flag.Bool("history", false, "print recent runs for the app and exit")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = setupLogger(cfg.LogLevel)

	if *appID == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -app <package-name> [-config config.yaml] [-watch 1h] [-history]")
		os.Exit(2)
	}

	var history *sqlite.HistoryStore
	if cfg.History.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
			logger.Error("failed to create history directory", "error", err)
			os.Exit(1)
		}
		history, err = sqlite.Open(cfg.History.Path)
		if err != nil {
			logger.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		defer history.Close()
	}

	if *showHistory {
		if history == nil {
			logger.Error("history is disabled in config")
			os.Exit(1)
		}
		printHistory(history, *appID)
		return
	}

	client := playstore.New(playstore.Config{
		BaseURL:  cfg.Fetch.BaseURL,
		PageSize: cfg.Fetch.PageSize,
		Timeout:  time.Duration(cfg.Fetch.Timeout),
	}, logger)

	exporter := export.New(cfg.ResultsDir, logger)

	analyzeService := service.NewAnalyzeService(client, exporter, historyOrNil(history), logger, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	sink := &terminalSink{}

	if *watch > 0 {
		sched := scheduler.NewScheduler(analyzeService, *appID, sink, *watch, logger)
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			logger.Error("scheduler error", "error", err)
			os.Exit(1)
		}
		return
	}

	if _, err := analyzeService.Run(ctx, *appID, sink); err != nil {
		os.Exit(1)
	}
}

// terminalSink prints run messages straight to the terminal. The CLI
// has no UI thread to protect, so no queue sits in between.
type terminalSink struct{}

func (t *terminalSink) Notify(msg relay.Message) {
	switch msg.Kind {
	case relay.KindText:
		fmt.Println(msg.Text)
	case relay.KindStatus:
		fmt.Printf("== %s\n", msg.Text)
	case relay.KindProgress:
		fmt.Printf("[%3d%%]\n", msg.Progress)
	case relay.KindError:
		fmt.Fprintf(os.Stderr, "error: %s\n", msg.Text)
	case relay.KindSuccess:
		fmt.Println(msg.Text)
	}
}

func printHistory(history *sqlite.HistoryStore, appID string) {
	records, err := history.Recent(context.Background(), appID, 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list history: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Printf("no recorded runs for %s\n", appID)
		return
	}

	for _, r := range records {
		fmt.Printf("%s  reviews=%d  avg_length=%.1f  %s\n",
			r.StartedAt.Format(time.DateTime), r.ReviewCount, r.AverageLength, r.ReviewsPath)
	}
}

// historyOrNil keeps a typed nil *HistoryStore from becoming a
// non-nil RunHistory interface value.
func historyOrNil(history *sqlite.HistoryStore) service.RunHistory {
	if history == nil {
		return nil
	}
	return history
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
