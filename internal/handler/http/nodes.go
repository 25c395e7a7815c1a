package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// maxNodeBody caps the body of a node write.
const maxNodeBody = 1 << 20

func (h *Handler) getNode(w http.ResponseWriter, r *http.Request) {
	soul := chi.URLParam(r, "soul")

	node, err := h.engine.Get(r.Context(), soul)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, node)
}

func (h *Handler) putNode(w http.ResponseWriter, r *http.Request) {
	soul := chi.URLParam(r, "soul")

	var fields map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNodeBody)).Decode(&fields); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", ErrInvalidFields, err))
		return
	}
	if len(fields) == 0 {
		writeError(w, r, ErrEmptyFields)
		return
	}

	if err := h.engine.Put(r.Context(), soul, fields); err != nil {
		writeError(w, r, err)
		return
	}

	node, err := h.engine.Get(r.Context(), soul)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, node)
}
