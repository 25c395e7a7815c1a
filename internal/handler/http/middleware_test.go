package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
)

// newTestHandler builds a Handler with only a logger, enough for the
// middleware.
func newTestHandler(log *logger.Logger) *Handler {
	return &Handler{logger: log}
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		requestHeader string
		wantSame      bool
	}{
		{name: "trace id from request is reused", requestHeader: "my-trace", wantSame: true},
		{name: "missing trace id is generated"},
		{name: "oversized trace id is replaced", requestHeader: strings.Repeat("x", maxTraceIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTestHandler(&logger.Logger{Logger: zerolog.New(&buf)})

			var seen *http.Request
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r
				logger.FromRequest(r).Info().Msg("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.requestHeader != "" {
				req.Header.Set(traceIDHeader, tt.requestHeader)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			require.NotNil(t, seen)
			got := rr.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.requestHeader, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err, "generated trace id must be a uuid")
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, got, entry["trace_id"])
		})
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(logger.Nop())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	req.RemoteAddr = "10.0.0.1:4000"
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))

	rr := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rr, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "10.0.0.1:4000", entry["remote"])
	assert.Equal(t, "/api/config", entry["uri"])
	assert.Equal(t, http.MethodGet, entry["method"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
	assert.Contains(t, entry, "duration")
}

func TestAccessRecorder(t *testing.T) {
	t.Run("first WriteHeader wins", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rec := newAccessRecorder(rr)

		rec.WriteHeader(http.StatusCreated)
		rec.WriteHeader(http.StatusInternalServerError)

		assert.Equal(t, http.StatusCreated, rec.code())
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Write implies 200 and counts bytes", func(t *testing.T) {
		rec := newAccessRecorder(httptest.NewRecorder())

		rec.Write([]byte("ab"))
		rec.Write([]byte("cde"))

		assert.Equal(t, http.StatusOK, rec.code())
		assert.Equal(t, 5, rec.size)
	})

	t.Run("empty response reports 200", func(t *testing.T) {
		rec := newAccessRecorder(httptest.NewRecorder())

		assert.Equal(t, http.StatusOK, rec.code())
		assert.Zero(t, rec.size)
	})

	t.Run("Unwrap returns the underlying writer", func(t *testing.T) {
		rr := httptest.NewRecorder()

		assert.Same(t, rr, newAccessRecorder(rr).Unwrap())
	})

	t.Run("failed Hijack is not an upgrade", func(t *testing.T) {
		rec := newAccessRecorder(httptest.NewRecorder())

		_, _, err := rec.Hijack()

		assert.Error(t, err)
		assert.False(t, rec.upgraded)
		assert.Zero(t, rec.status)
	})
}

func TestCheckHTTPMethod(t *testing.T) {
	h, _ := newHandlerWithEngine(t, false)
	router := h.Init()

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{method: http.MethodPost, path: "/healthz", wantStatus: http.StatusNotFound},
		{method: http.MethodDelete, path: "/api/config", wantStatus: http.StatusNotFound},
		{method: http.MethodPost, path: "/api/nodes/a", wantStatus: http.StatusNotFound},
		{method: http.MethodDelete, path: "/api/nodes/a", wantStatus: http.StatusNotFound},
		{method: http.MethodGet, path: "/gun", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
