package infra

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("INPUT_PATH", "")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("PROCESSED_FILE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv mismatch: got %q want %q", cfg.AppEnv, "development")
	}
	if cfg.InputPath != "data/donors.csv" {
		t.Fatalf("InputPath mismatch: got %q", cfg.InputPath)
	}
	expected := filepath.Join("out", "donors_processed.csv")
	if cfg.ProcessedPath() != expected {
		t.Fatalf("ProcessedPath mismatch: got %q want %q", cfg.ProcessedPath(), expected)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("AllowedOrigins should default empty, got %#v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("INPUT_PATH", "/srv/data/export.csv")
	t.Setenv("OUTPUT_DIR", "/srv/out")
	t.Setenv("SUMMARY_FILE", "summary.json")
	t.Setenv("ALLOWED_ORIGINS", "https://reports.example.com, https://cpo.example.com")
	t.Setenv("HTTP_READ_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.InputPath != "/srv/data/export.csv" {
		t.Fatalf("InputPath mismatch: got %q", cfg.InputPath)
	}
	if cfg.SummaryPath() != filepath.Join("/srv/out", "summary.json") {
		t.Fatalf("SummaryPath mismatch: got %q", cfg.SummaryPath())
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://cpo.example.com" {
		t.Fatalf("AllowedOrigins mismatch: %#v", cfg.AllowedOrigins)
	}
	if cfg.HTTPReadTimeout.Seconds() != 5 {
		t.Fatalf("HTTPReadTimeout mismatch: got %s", cfg.HTTPReadTimeout)
	}
}
