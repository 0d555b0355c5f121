package infra

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger constructs the service logger. Production emits JSON at info
// level; development gets a console writer and debug-level stage timings.
func NewLogger(appEnv string) zerolog.Logger {
	zerolog.DurationFieldUnit = time.Millisecond

	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	out := zerolog.New(os.Stdout)
	if appEnv == "development" {
		out = out.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.Level(level).
		With().
		Timestamp().
		Str("service", "donorpulse").
		Logger()
}

// Logger aliases zerolog.Logger so callers outside infra can name the
// logging contract without importing the third-party module directly.
type Logger = zerolog.Logger
