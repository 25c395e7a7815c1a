// Package graph is the bundled graph database engine.
//
// [Open] satisfies [engine.Constructor]. A node keeps its graph in the
// storage backend named by the "store" option, batches writes by "chunk"
// and "until", and when "ws" is on exchanges changes with its peers over
// websockets. With a "web" listener it also serves the relay endpoints.
//
// Nodes are merged last-writer-wins by their update timestamp, field by
// field on top of the stored state.
package graph
