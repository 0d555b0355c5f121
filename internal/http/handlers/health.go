package handlers

import (
	"net/http"
)

// Health reports liveness plus the shape of the snapshot being served, so a
// probe can tell an empty deployment from one holding real data.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"donors":       a.Table.Len(),
		"generated_at": a.Summary.GeneratedAt,
	})
}
