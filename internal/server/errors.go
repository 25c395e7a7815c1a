// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoListener = errors.New("no listener is provided")
	errNoHandler  = errors.New("no handler is provided")
)
