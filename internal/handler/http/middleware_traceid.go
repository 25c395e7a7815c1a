package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// maxTraceIDLen bounds a caller supplied trace id before it reaches the logs.
const maxTraceIDLen = 128

// withTraceID attaches a request scoped logger carrying the trace id. A
// usable id from the caller is kept, otherwise a new one is generated. The
// id is echoed back so websocket peers can correlate their handshake.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDFor(r)

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

func traceIDFor(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(traceIDHeader))
	if id == "" || len(id) > maxTraceIDLen {
		return uuid.NewString()
	}
	return id
}
