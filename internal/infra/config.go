package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	InputPath        string
	OutputDir        string
	ProcessedFile    string
	SummaryFile      string
	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	// Load .env files if present. Missing files are not an error.
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		InputPath:        getEnv("INPUT_PATH", "data/donors.csv"),
		OutputDir:        getEnv("OUTPUT_DIR", "out"),
		ProcessedFile:    getEnv("PROCESSED_FILE", "donors_processed.csv"),
		SummaryFile:      getEnv("SUMMARY_FILE", "portfolio_summary.json"),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.InputPath == "" {
		return nil, fmt.Errorf("INPUT_PATH is required")
	}

	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("OUTPUT_DIR is required")
	}

	return cfg, nil
}

// ProcessedPath returns the location of the processed table artifact.
func (c *Config) ProcessedPath() string {
	return filepath.Join(c.OutputDir, c.ProcessedFile)
}

// SummaryPath returns the location of the portfolio summary artifact.
func (c *Config) SummaryPath() string {
	return filepath.Join(c.OutputDir, c.SummaryFile)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
