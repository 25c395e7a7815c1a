package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type httpServer struct {
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

// NewHTTPServer returns a server that will serve handler on listener. The
// listener must already be bound; the server never opens sockets itself.
func NewHTTPServer(listener net.Listener, handler http.Handler, logger *logger.Logger) (Server, error) {
	if listener == nil {
		return nil, errNoListener
	}
	if handler == nil {
		return nil, errNoHandler
	}

	return &httpServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		listener: listener,
		logger:   logger,
	}, nil
}

func (h *httpServer) RunServer() {
	h.logger.Info().Str("address", h.listener.Addr().String()).Msg("Launching HTTP server")
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Msg("HTTP server Serve")
	}
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		// connections still open after the timeout
		h.logger.Err(err).Msg("HTTP server Shutdown")
	}
	h.logger.Info().Msg("HTTP server Shutdown gracefully")
}
