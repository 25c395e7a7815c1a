package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/models"
)

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"id":     h.engine.ID(),
	})
}

func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.options)
}

func (h *Handler) peers(w http.ResponseWriter, r *http.Request) {
	resp := models.PeerList{Peers: h.options.Peers()}
	if resp.Peers == nil {
		resp.Peers = []string{}
	}
	if h.options.Bool(engine.KeyWS) {
		resp.Self = selfURL(r)
	}

	writeJSON(w, r, http.StatusOK, resp)
}

// selfURL is the websocket URL of the relay for the host the request was
// addressed to.
func selfURL(r *http.Request) string {
	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	return scheme + "://" + r.Host + gunPath
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("error encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	}
	http.Error(w, err.Error(), status)
}
