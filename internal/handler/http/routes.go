package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
)

// Init builds the relay router. The websocket endpoint is only mounted when
// the engine runs with the realtime transport.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	router.Get("/healthz", h.healthz)

	router.Route("/api", func(r chi.Router) {
		r.Get("/config", h.config)
		r.Get("/peers", h.peers)
		r.Get("/nodes/{soul}", h.getNode)
		r.Put("/nodes/{soul}", h.putNode)
	})

	if h.options.Bool(engine.KeyWS) {
		router.Get(gunPath, h.gun)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
