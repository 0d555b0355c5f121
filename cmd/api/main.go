package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donorpulse/internal/http/handlers"
	"donorpulse/internal/http/httpapi"
	"donorpulse/internal/infra"
	"donorpulse/internal/report"
	"donorpulse/internal/table"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// The API serves the last pipeline run as an immutable snapshot: load
	// once, aggregate once, then read lock-free.
	tbl, err := table.ReadFile(cfg.ProcessedPath())
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.ProcessedPath()).Msg("failed to load processed table, run the pipeline first")
	}
	summary := report.Build(tbl, time.Now())
	logger.Info().
		Int("rows", tbl.Len()).
		Int("high_risk", summary.HighRiskDonors).
		Msg("processed table loaded")

	app := handlers.NewApp(logger, tbl, summary)
	router := httpapi.NewRouter(app, logger, cfg.AllowedOrigins)
	server := infra.NewHTTPServer(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("port", cfg.Port).Msg("report API listening")
	if err := server.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("http server failed")
	}
	logger.Info().Msg("shutdown complete")
}
