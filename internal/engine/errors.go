// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import "errors"

// Sentinel errors shared by engine implementations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrEngineClosed is returned by operations on a closed engine.
	ErrEngineClosed = errors.New("engine is closed")

	// ErrEmptySoul is returned when a node is addressed without a soul.
	ErrEmptySoul = errors.New("empty soul")

	// ErrInvalidOptions is returned by a constructor when the option record
	// cannot describe a working engine.
	ErrInvalidOptions = errors.New("invalid engine options")
)
