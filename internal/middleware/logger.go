package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type accessRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (ar *accessRecorder) WriteHeader(code int) {
	ar.status = code
	ar.ResponseWriter.WriteHeader(code)
}

func (ar *accessRecorder) Write(p []byte) (int, error) {
	n, err := ar.ResponseWriter.Write(p)
	ar.bytes += n
	return n, err
}

// Logger emits one structured access line per request.
func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &accessRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			l.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("elapsed", time.Since(start)).
				Str("request_id", RequestIDFromContext(r.Context())).
				Msg("request")
		})
	}
}
