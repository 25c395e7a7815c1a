// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of a relay's read-only HTTP API.
//
// The primary abstraction is [RelayAdapter], which lets a node ask a relay
// who else is in the mesh before it starts. The package ships an HTTP/REST
// implementation ([NewHTTPRelayAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-graph-peer/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/relay_adapter_mock.go -package=mock

// RelayAdapter talks to one relay.
type RelayAdapter interface {
	// Health returns the engine id of the relay. It fails when the relay is
	// not serving.
	Health(ctx context.Context) (string, error)

	// Peers returns the relay's own websocket endpoint and the peers it is
	// configured with.
	Peers(ctx context.Context) (models.PeerList, error)

	// Config returns the flat option record the relay's engine runs with.
	Config(ctx context.Context) (map[string]any, error)
}
