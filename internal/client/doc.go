// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process runtime.
//
// It wires peer discovery, the optional preset picker and the peer factories
// into a single process lifecycle.
package client
