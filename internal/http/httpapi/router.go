package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donorpulse/internal/http/handlers"
	"donorpulse/internal/middleware"
)

// NewRouter assembles the read-only report API.
func NewRouter(app *handlers.App, log zerolog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(log),
		middleware.CORS(allowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/summary", app.PortfolioSummary)

	r.Route("/v1/segments", func(r chi.Router) {
		r.Get("/ghosts", app.SegmentGhosts)
		r.Get("/at-risk", app.SegmentAtRisk)
	})

	r.Get("/v1/donors/{id}", app.DonorByID)

	return r
}
