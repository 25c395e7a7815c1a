package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/wire"
	"github.com/MKhiriev/go-graph-peer/models"
)

// gunPath is where peers open their websocket.
const gunPath = "/gun"

// gun upgrades the request and serves the connection until either side
// closes it.
func (h *Handler) gun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		log.Err(err).Str("func", "*Handler.gun").Msg("websocket upgrade failed")
		return
	}

	conn := wire.NewConn(ws, r.RemoteAddr)
	if !h.hub.add(conn) {
		conn.Close()
		return
	}
	defer h.hub.remove(conn)

	log.Info().Str("remote", conn.Remote()).Int("peers", h.hub.len()).Msg("peer connected")
	if err := wire.Serve(h.hub.ctx, conn, h.engine, log); err != nil {
		log.Warn().Err(err).Str("remote", conn.Remote()).Msg("peer connection failed")
	}
	log.Info().Str("remote", conn.Remote()).Msg("peer disconnected")
}

// hub tracks the connected peers of a relay and pushes every local change
// of the engine to all of them.
type hub struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Logger

	mu     sync.Mutex
	conns  map[*wire.Conn]struct{}
	closed bool

	unsubscribe func()
}

func newHub(e engine.Engine, log *logger.Logger) *hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &hub{
		ctx:    ctx,
		cancel: cancel,
		log:    log,
		conns:  make(map[*wire.Conn]struct{}),
	}
	h.unsubscribe = e.Subscribe(h.broadcast)
	return h
}

func (h *hub) add(c *wire.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.conns[c] = struct{}{}
	return true
}

func (h *hub) remove(c *wire.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *hub) snapshot() []*wire.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := make([]*wire.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	return conns
}

// broadcast sends node to every peer. A peer that cannot keep up is
// disconnected; it will resync on reconnect.
func (h *hub) broadcast(node models.Node) {
	msg := wire.PutMessage(node)
	for _, c := range h.snapshot() {
		if err := c.Send(msg); err != nil {
			h.log.Warn().Err(err).Str("remote", c.Remote()).Msg("dropping peer")
			c.Close()
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	h.mu.Unlock()

	h.unsubscribe()
	h.cancel()
	for _, c := range h.snapshot() {
		c.Close()
	}
}
