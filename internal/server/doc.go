// Package server runs the relay's HTTP server on a listener owned by the
// caller and ties process lifetime to termination signals.
package server
