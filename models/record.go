// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Record is a fully resolved node configuration. It is built fresh on every
// factory call, handed once to the engine constructor and then dropped.
type Record struct {
	// Peers lists the endpoints the node connects to, in caller order.
	Peers []string `json:"peers"`

	// StorageMode is the single active persistence backend.
	StorageMode StorageMode `json:"storage_mode"`

	// StoragePath is the namespace or filesystem path of the backend.
	StoragePath string `json:"storage_path,omitempty"`

	// LocalStorage enables the small key-value store layer.
	LocalStorage bool `json:"local_storage"`

	// Persistence enables the durable store layer.
	Persistence bool `json:"persistence"`

	// Realtime enables the websocket transport to peers.
	Realtime bool `json:"realtime"`

	// ChunkSize is the number of pending writes that forces a flush.
	ChunkSize int `json:"chunk_size"`

	// TimeoutMs is how long pending writes may wait before a flush.
	TimeoutMs int `json:"timeout_ms"`

	// QuotaBytes caps the size of the store. Nil means unlimited.
	QuotaBytes *int64 `json:"quota_bytes,omitempty"`
}

// Timeout returns TimeoutMs as a time.Duration.
func (r Record) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// Summary renders the record as ordered label/value pairs for display.
func (r Record) Summary() [][2]string {
	peers := "-"
	if len(r.Peers) > 0 {
		peers = strings.Join(r.Peers, ", ")
	}
	path := r.StoragePath
	if path == "" {
		path = "-"
	}
	quota := "unlimited"
	if r.QuotaBytes != nil {
		quota = humanize.IBytes(uint64(*r.QuotaBytes))
	}

	return [][2]string{
		{"peers", peers},
		{"storage", r.StorageMode.String()},
		{"path", path},
		{"localStorage", strconv.FormatBool(r.LocalStorage)},
		{"persistence", strconv.FormatBool(r.Persistence)},
		{"realtime", strconv.FormatBool(r.Realtime)},
		{"chunk", strconv.Itoa(r.ChunkSize)},
		{"timeout", r.Timeout().String()},
		{"quota", quota},
	}
}
