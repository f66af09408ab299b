package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2/app"

	"playstore_analyzer/internal/config"
	"playstore_analyzer/internal/export"
	"playstore_analyzer/internal/gui"
	"playstore_analyzer/internal/service"
	"playstore_analyzer/internal/source/playstore"
	"playstore_analyzer/internal/storage/sqlite"
)

const appID = "com.playstoreanalyzer.app"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = setupLogger(cfg.LogLevel)

	var history service.RunHistory
	if cfg.History.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0o755); err != nil {
			logger.Error("failed to create history directory", "error", err)
			os.Exit(1)
		}
		store, err := sqlite.Open(cfg.History.Path)
		if err != nil {
			// The GUI is still useful without history; log and move on.
			logger.Warn("history disabled", "error", err)
		} else {
			defer store.Close()
			history = store
		}
	}

	client := playstore.New(playstore.Config{
		BaseURL:  cfg.Fetch.BaseURL,
		PageSize: cfg.Fetch.PageSize,
		Timeout:  time.Duration(cfg.Fetch.Timeout),
	}, logger)

	exporter := export.New(cfg.ResultsDir, logger)

	analyzeService := service.NewAnalyzeService(client, exporter, history, logger, cfg)

	fyneApp := app.NewWithID(appID)
	window := gui.NewMainWindow(fyneApp, analyzeService, logger)
	window.ShowAndRun()
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
