// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package engine defines the boundary between resolved configuration and the
// graph database engine: the flat [Options] record the engine constructor
// consumes and the [Engine] contract it returns.
package engine

import (
	"context"

	"github.com/MKhiriev/go-graph-peer/models"
)

//go:generate mockgen -source=engine.go -destination=../mock/engine_mock.go -package=mock

// Engine is a running graph database node.
type Engine interface {
	// ID returns the unique id of this node within the mesh.
	ID() string

	// Put writes fields into the node identified by soul, merging them with
	// the fields already stored there.
	Put(ctx context.Context, soul string, fields map[string]any) error

	// Get returns the node stored under soul.
	Get(ctx context.Context, soul string) (models.Node, error)

	// Merge applies a node received from another peer. It reports whether
	// the local state changed.
	Merge(ctx context.Context, node models.Node) (bool, error)

	// Subscribe registers fn to be called with every node that changes
	// locally. The returned function removes the subscription.
	Subscribe(fn func(models.Node)) (unsubscribe func())

	// Close flushes pending writes and releases every resource.
	Close() error
}

// Constructor builds an [Engine] from a flat option record.
type Constructor func(ctx context.Context, opts Options) (Engine, error)
