package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/store"
)

var errorStatusMap = map[error]int{
	ErrInvalidFields: http.StatusBadRequest,
	ErrEmptyFields:   http.StatusBadRequest,

	engine.ErrEmptySoul:    http.StatusBadRequest,
	engine.ErrEngineClosed: http.StatusServiceUnavailable,

	store.ErrNodeNotFound:    http.StatusNotFound,
	store.ErrQuotaExceeded:   http.StatusInsufficientStorage,
	store.ErrStorageClosed:   http.StatusServiceUnavailable,
	store.ErrUnsupportedMode: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
