package server

// Server is a relay transport bound to a listener the caller opened.
//
// [RunServer] blocks until the server stops; a graceful stop is not an error.
// [Shutdown] stops accepting connections and waits for in-flight requests up
// to the shutdown timeout. Hijacked websocket connections are not tracked and
// must be closed by their owner.
type Server interface {
	// RunServer serves on the listener until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and closes the listener.
	Shutdown()
}
