// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by [Resolve] and the option parsers. Callers
// should match them with [errors.Is].
var (
	// ErrInvalidArgument is returned for a malformed peers list, an override
	// of the wrong shape for the scenario, or an out-of-range value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a named preset does not exist.
	ErrNotFound = errors.New("not found")
)

// UnknownPresetError reports a preset name missing from the preset table.
// It matches [ErrNotFound] and carries the valid names in table order.
type UnknownPresetError struct {
	Name  string
	Valid []string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("preset %q not found, valid presets: %s", e.Name, strings.Join(e.Valid, ", "))
}

func (e *UnknownPresetError) Unwrap() error {
	return ErrNotFound
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
