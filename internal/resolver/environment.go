package resolver

import "github.com/MKhiriev/go-graph-peer/models"

// SelectStorage picks the backend for an environment: the filesystem for
// server-like processes, the large object store when it is available and
// preferred, the small key-value store otherwise.
func SelectStorage(env models.Environment) models.StorageMode {
	switch {
	case env.ServerLike:
		return models.StorageFileSystem
	case env.HasLargeStorage && env.PreferLargeStorage:
		return models.StorageIndexedDB
	default:
		return models.StorageLocalStorage
	}
}

// deriveStorage picks the backend implied by the resolved flags when no layer
// set a mode explicitly. Persistence always asks for the large store.
func deriveStorage(localStorage, persistence bool, env models.Environment) models.StorageMode {
	switch {
	case persistence:
		env.PreferLargeStorage = true
		return SelectStorage(env)
	case localStorage:
		return models.StorageLocalStorage
	default:
		return models.StorageNone
	}
}
