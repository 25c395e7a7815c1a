// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-graph-peer/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// PresetPicker asks the user for a preset name.
type PresetPicker interface {
	PickPreset(ctx context.Context) (string, error)
}

// PickerFactory builds a picker for the peers and environment the node will
// be resolved with.
type PickerFactory func(peers []string, env models.Environment) PresetPicker
