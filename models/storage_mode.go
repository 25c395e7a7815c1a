// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// StorageMode selects the single persistence backend a node writes to.
// Exactly one mode is active per resolved [Record].
type StorageMode string

const (
	// StorageNone keeps graph data in memory only.
	StorageNone StorageMode = "none"

	// StorageLocalStorage is a small key-value store, namespaced by
	// [Record.StoragePath] when one is given.
	StorageLocalStorage StorageMode = "localStorage"

	// StorageIndexedDB is a large object store. Requires a namespace.
	StorageIndexedDB StorageMode = "indexedDB"

	// StorageFileSystem is a directory-backed store. Requires a path.
	StorageFileSystem StorageMode = "fileSystem"
)

// StorageModes lists every known mode in declaration order.
var StorageModes = []StorageMode{
	StorageNone,
	StorageLocalStorage,
	StorageIndexedDB,
	StorageFileSystem,
}

// ParseStorageMode converts a user-supplied name into a [StorageMode].
// Matching ignores case, so "FileSystem" and "filesystem" are equivalent.
func ParseStorageMode(s string) (StorageMode, error) {
	for _, m := range StorageModes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}

	return "", fmt.Errorf("unknown storage mode %q", s)
}

// RequiresPath reports whether the backend cannot be opened without a
// namespace or filesystem path.
func (m StorageMode) RequiresPath() bool {
	return m == StorageIndexedDB || m == StorageFileSystem
}

// Durable reports whether data written in this mode survives a restart of
// the owning process in the large-store sense (IndexedDB, FileSystem).
func (m StorageMode) Durable() bool {
	return m.RequiresPath()
}

func (m StorageMode) String() string {
	if m == "" {
		return string(StorageNone)
	}
	return string(m)
}
