package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidNodeConfigs indicates node settings the resolver would
	// reject (for example, an unknown scenario or a malformed override).
	ErrInvalidNodeConfigs = errors.New("invalid node configuration")
	// ErrInvalidAppConfigs indicates invalid process-level settings
	// (for example, an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidDiscoveryConfigs indicates invalid discovery settings
	// (for example, a negative timeout).
	ErrInvalidDiscoveryConfigs = errors.New("invalid discovery configuration")
)
