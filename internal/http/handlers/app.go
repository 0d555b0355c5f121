package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"donorpulse/internal/report"
	"donorpulse/internal/table"
)

// App carries the processed table snapshot and its summary. The table is
// loaded once at startup and never mutated, so handlers read it lock-free.
type App struct {
	Log     zerolog.Logger
	Table   *table.Table
	Summary report.Summary
}

func NewApp(log zerolog.Logger, t *table.Table, s report.Summary) *App {
	return &App{Log: log, Table: t, Summary: s}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": kind, "message": message},
	})
}
