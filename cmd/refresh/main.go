package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoopboard/draftboard/internal/app"
	"github.com/hoopboard/draftboard/internal/config"
	"github.com/hoopboard/draftboard/internal/observability"
	"github.com/hoopboard/draftboard/internal/platform/logging"
)

// One-shot refresh runner for cron-style deployments: scrape, merge, persist,
// upload, exit.
func main() {
	year := flag.Int("year", 0, "statistics season override; 0 uses SEASON_YEAR or the current year")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	snapshot, err := application.RefreshService.RefreshSeason(ctx, *year)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if shutdownErr := shutdownUptrace(shutdownCtx); shutdownErr != nil {
		logger.Error("shutdown uptrace", "error", shutdownErr)
	}
	if closeErr := application.Close(); closeErr != nil {
		logger.Error("close app", "error", closeErr)
	}

	if err != nil {
		logger.Error("refresh failed", "error", err)
		os.Exit(1)
	}

	logger.Info("refresh done",
		"players", snapshot.MatchStats.Total,
		"matched", snapshot.MatchStats.Matched,
		"international", snapshot.MatchStats.International,
		"updated_at", snapshot.UpdatedAt,
	)
}
