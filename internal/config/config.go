// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Defaults applied after all sources are merged.
const (
	DefaultScenario         = "client"
	DefaultLogLevel         = "info"
	DefaultHTTPAddress      = ":8765"
	DefaultDiscoveryTimeout = 5 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// go-graph-peer binaries. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the version and log level.
	App App `envPrefix:"APP_"`

	// Node describes how the peer is resolved: scenario, preset, peers,
	// runtime environment and option overrides.
	Node Node `envPrefix:"NODE_"`

	// Server holds the listen address of the relay.
	Server Server `envPrefix:"SERVER_"`

	// Discovery points the client at a relay whose peer list seeds its own.
	Discovery Discovery `envPrefix:"DISCOVERY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", "warn", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Node holds the inputs of one resolution.
type Node struct {
	// Scenario is one of "client", "server", "preset" or "auto".
	// Env: NODE_SCENARIO
	Scenario string `env:"SCENARIO"`

	// Preset names a row of the preset table, case-insensitive.
	// Env: NODE_PRESET
	Preset string `env:"PRESET"`

	// Peers lists endpoints to connect to, comma separated in env and flags.
	// Env: NODE_PEERS
	Peers []string `env:"PEERS" envSeparator:","`

	// ServerLike, HasLargeStorage and PreferLargeStorage describe the
	// runtime for the auto scenario. When none is set the resolver default
	// environment is used.
	// Env: NODE_SERVER_LIKE, NODE_HAS_LARGE_STORAGE, NODE_PREFER_LARGE_STORAGE
	ServerLike         bool `env:"SERVER_LIKE"`
	HasLargeStorage    bool `env:"HAS_LARGE_STORAGE"`
	PreferLargeStorage bool `env:"PREFER_LARGE_STORAGE"`

	// Overrides is a JSON object of option overrides, e.g.
	// {"chunkSize": 10, "storagePath": "/var/lib/peer"}.
	// Env: NODE_OVERRIDES
	Overrides string `env:"OVERRIDES"`

	// Interactive runs the preset picker before the client starts.
	// Env: NODE_INTERACTIVE
	Interactive bool `env:"INTERACTIVE"`
}

// Server holds network settings for the relay.
type Server struct {
	// HTTPAddress is the TCP address on which the relay listens,
	// in "host:port" format (e.g. "0.0.0.0:8765").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Discovery holds the relay used to seed the client's peer list.
type Discovery struct {
	// URL of the relay, http(s) or ws(s). Empty disables discovery.
	// Env: DISCOVERY_URL
	URL string `env:"URL"`

	// Timeout bounds each discovery request (e.g. "5s").
	// Env: DISCOVERY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Node.Scenario == "" {
		cfg.Node.Scenario = DefaultScenario
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Discovery.Timeout == 0 {
		cfg.Discovery.Timeout = DefaultDiscoveryTimeout
	}
}
