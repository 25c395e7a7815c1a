// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request decoding. Callers can match against them with
// [errors.Is].
var (
	// ErrInvalidFields is returned when a node write body is not a JSON
	// object of fields.
	ErrInvalidFields = errors.New("request body must be a JSON object of fields")

	// ErrEmptyFields is returned when a node write carries no fields.
	ErrEmptyFields = errors.New("no fields to write")
)
