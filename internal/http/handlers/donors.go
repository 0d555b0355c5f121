package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorpulse/internal/domain"
	"donorpulse/internal/report"
)

// SegmentGhosts serves the dormant high-value segment: donors whose lifetime
// giving clears the threshold with nothing in the trailing 24 months.
func (a *App) SegmentGhosts(w http.ResponseWriter, r *http.Request) {
	donors := report.Ghosts(a.Table)
	a.json(w, http.StatusOK, segmentPayload(donors))
}

// SegmentAtRisk serves donors whose drift status is High Risk / Dormant.
func (a *App) SegmentAtRisk(w http.ResponseWriter, r *http.Request) {
	donors := report.AtRisk(a.Table)
	a.json(w, http.StatusOK, segmentPayload(donors))
}

// DonorByID serves a single processed donor row.
func (a *App) DonorByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	donor, err := report.FindDonor(a.Table, id)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "unknown donor id")
		return
	}
	a.json(w, http.StatusOK, donor)
}

func segmentPayload(donors []domain.Donor) map[string]any {
	if donors == nil {
		donors = []domain.Donor{}
	}
	return map[string]any{"count": len(donors), "items": donors}
}
