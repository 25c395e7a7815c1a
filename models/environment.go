package models

// Environment describes the runtime capabilities a node is created in.
// It is injected by the caller instead of being probed from process globals,
// so resolution stays a pure function of its inputs.
type Environment struct {
	// ServerLike is true for long-running processes with a writable
	// filesystem (daemons, relays, CLI tools).
	ServerLike bool `json:"server_like"`

	// HasLargeStorage reports that a large object store is available.
	HasLargeStorage bool `json:"has_large_storage"`

	// PreferLargeStorage asks the selector to favour the large object store
	// over the small key-value store when both are available.
	PreferLargeStorage bool `json:"prefer_large_storage"`
}

// ServerEnvironment is the environment every server-side node runs in.
func ServerEnvironment() Environment {
	return Environment{ServerLike: true, HasLargeStorage: true}
}

// BrowserEnvironment is the default environment for client-side nodes: no
// writable filesystem, but a large object store that is preferred for
// durable data.
func BrowserEnvironment() Environment {
	return Environment{HasLargeStorage: true, PreferLargeStorage: true}
}
