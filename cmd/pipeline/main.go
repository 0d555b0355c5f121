package main

import (
	"bytes"
	"context"
	"flag"
	"time"

	"github.com/google/uuid"

	"donorpulse/internal/infra"
	"donorpulse/internal/pipeline"
	"donorpulse/internal/report"
	"donorpulse/internal/storage"
	"donorpulse/internal/table"
)

func main() {
	input := flag.String("input", "", "donor export CSV path (overrides INPUT_PATH)")
	output := flag.String("output", "", "artifact directory (overrides OUTPUT_DIR)")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	if *input != "" {
		cfg.InputPath = *input
	}
	if *output != "" {
		cfg.OutputDir = *output
	}

	logger := infra.NewLogger(cfg.AppEnv).With().Str("run_id", uuid.NewString()).Logger()

	// The observation timestamp is captured exactly once and reused for every
	// row, so a run is a pure function of its input bytes and this instant.
	now := time.Now()

	tbl, err := table.ReadFile(cfg.InputPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.InputPath).Msg("failed to read donor export")
	}

	if err := pipeline.NewRunner(now, logger).Run(tbl); err != nil {
		logger.Fatal().Err(err).Msg("pipeline failed")
	}

	store, err := storage.NewArtifactStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare artifact store")
	}

	ctx := context.Background()

	var csvBuf bytes.Buffer
	if err := tbl.WriteCSV(&csvBuf); err != nil {
		logger.Fatal().Err(err).Msg("failed to render processed table")
	}
	processedPath, err := store.Write(ctx, cfg.ProcessedFile, csvBuf.Bytes())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to write processed table")
	}

	summary := report.Build(tbl, now)
	raw, err := report.ExportJSON(summary)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to render summary")
	}
	summaryPath, err := store.Write(ctx, cfg.SummaryFile, raw)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to write summary")
	}

	logger.Info().
		Int("rows", tbl.Len()).
		Str("processed", processedPath).
		Str("summary", summaryPath).
		Dur("elapsed", time.Since(now)).
		Msg("run complete")
}
