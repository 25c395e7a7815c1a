package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
)

// Handler serves the relay endpoints of one engine.
type Handler struct {
	engine  engine.Engine
	options engine.Options

	hub      *hub
	upgrader websocket.Upgrader

	logger *logger.Logger
}

// NewHandler returns a handler for e. opts is the engine's option record and
// is exposed as-is (minus the listener) on /api/config.
func NewHandler(e engine.Engine, opts engine.Options, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		engine:  e,
		options: opts.Public(),
		hub:     newHub(e, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Close disconnects every websocket peer. Hijacked connections are not
// tracked by [http.Server.Shutdown], so the owner must call this.
func (h *Handler) Close() {
	h.hub.close()
}
