package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
)

// withLogging writes one access line per request once the handler returns.
// For the websocket endpoint that is when the peer disconnects.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		rec := newAccessRecorder(w)

		next.ServeHTTP(rec, r)

		duration := time.Since(start)

		log.Info().
			Str("remote", r.RemoteAddr).
			Str("uri", uri).
			Str("method", method).
			Int("status", rec.code()).
			Dur("duration", duration).
			Int("size", rec.size).
			Bool("upgraded", rec.upgraded).
			Send()
	})
}
