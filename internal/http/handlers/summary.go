package handlers

import (
	"net/http"
)

// Summary serves the whole-portfolio aggregates for the last pipeline run.
func (a *App) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Summary)
}
