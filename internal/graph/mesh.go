package graph

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/wire"
	"github.com/MKhiriev/go-graph-peer/models"
)

const (
	dialTimeout    = 5 * time.Second
	redialInterval = 5 * time.Second
)

// mesh keeps one outgoing websocket per configured peer and pushes local
// changes to all of them. Dropped peers are redialed by [mesh.redial].
type mesh struct {
	local  engine.Engine
	urls   []string
	dialer *websocket.Dialer
	logger *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	conns map[string]*wire.Conn
}

// newMesh validates the peer endpoints. Invalid endpoints are logged and
// skipped so that one typo does not take the node down.
func newMesh(local engine.Engine, peers []string, logger *logger.Logger) *mesh {
	ctx, cancel := context.WithCancel(context.Background())
	m := &mesh{
		local:  local,
		dialer: &websocket.Dialer{HandshakeTimeout: dialTimeout},
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		conns:  make(map[string]*wire.Conn),
	}

	for _, p := range peers {
		u, err := wire.SocketURL(p)
		if err != nil {
			logger.Warn().Err(err).Str("peer", p).Msg("skipping peer")
			continue
		}
		m.urls = append(m.urls, u)
	}
	return m
}

// redial connects every peer that is not connected right now.
func (m *mesh) redial(ctx context.Context) {
	for _, u := range m.urls {
		if ctx.Err() != nil || m.ctx.Err() != nil {
			return
		}
		if m.connected(u) {
			continue
		}
		if err := m.dial(ctx, u); err != nil {
			m.logger.Debug().Err(err).Str("peer", u).Msg("peer unreachable")
		}
	}
}

func (m *mesh) dial(ctx context.Context, u string) error {
	ctx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	ws, _, err := m.dialer.DialContext(ctx, u, nil)
	if err != nil {
		return err
	}
	conn := wire.NewConn(ws, u)

	m.mu.Lock()
	if m.ctx.Err() != nil {
		m.mu.Unlock()
		return conn.Close()
	}
	m.conns[u] = conn
	m.mu.Unlock()

	m.logger.Info().Str("peer", u).Msg("peer connected")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := wire.Serve(m.ctx, conn, m.local, m.logger); err != nil {
			m.logger.Warn().Err(err).Str("peer", u).Msg("peer connection failed")
		}

		m.mu.Lock()
		if m.conns[u] == conn {
			delete(m.conns, u)
		}
		m.mu.Unlock()
	}()
	return nil
}

func (m *mesh) connected(u string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.conns[u]
	return ok
}

// size returns the number of connected peers.
func (m *mesh) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// broadcast pushes node to every connected peer.
func (m *mesh) broadcast(node models.Node) {
	msg := wire.PutMessage(node)

	m.mu.Lock()
	conns := make([]*wire.Conn, 0, len(m.conns))
	for _, c := range m.conns {
		conns = append(conns, c)
	}
	m.mu.Unlock()

	for _, c := range conns {
		if err := c.Send(msg); err != nil {
			m.logger.Warn().Err(err).Str("peer", c.Remote()).Msg("dropping peer")
			c.Close()
		}
	}
}

// close disconnects every peer and waits for the read loops to exit.
func (m *mesh) close() {
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()

	m.wg.Wait()
}
