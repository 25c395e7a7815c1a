// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Fields are mapped via the `env` and `envPrefix` tags of
// [StructuredConfig], so NODE_PEERS fills Node.Peers and
// DISCOVERY_TIMEOUT fills Discovery.Timeout. Unset variables leave their
// fields zero, which lets later sources and defaults fill them.
//
// Returns a wrapped error if a value cannot be converted to the field type
// (e.g. a malformed duration or boolean).
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
