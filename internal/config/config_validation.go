// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-graph-peer/internal/resolver"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Node settings are
// checked with the resolver's own parsers, so a config file is held to the
// same rules as a programmatic caller.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err)
	}

	if cfg.Discovery.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidDiscoveryConfigs)
	}

	scenario, err := cfg.Node.ParsedScenario()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNodeConfigs, err)
	}

	if err = resolver.ValidatePeers(cfg.Node.Peers); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNodeConfigs, err)
	}

	if cfg.Node.Preset != "" {
		if _, err = resolver.LookupPreset(cfg.Node.Preset); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNodeConfigs, err)
		}
	}

	raw, err := cfg.Node.overrideMap()
	if err != nil {
		return err
	}
	if _, err = resolver.ParseOverrides(scenario, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidNodeConfigs, err)
	}

	return nil
}
