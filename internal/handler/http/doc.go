// Package http implements the relay's HTTP transport.
//
// It exposes the websocket endpoint peers connect to, a health probe and a
// small read-only API describing the relay's resolved configuration and its
// known peers. Request tracing and access logging are applied here before
// requests reach the engine.
package http
