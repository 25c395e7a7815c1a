// Package wire carries [models.Message] frames between peers over websocket
// connections.
//
// Both directions of the mesh use it: the node side dials relays and the
// relay side accepts upgraded HTTP requests. Either way a [Conn] is served
// by [Serve], which answers incoming frames against a local engine.
package wire
