package resolver

import (
	"fmt"
	"slices"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-graph-peer/models"
)

// Hard defaults, the lowest resolution layer.
const (
	DefaultChunkSize = 1000
	DefaultTimeoutMs = 250

	// FallbackStoragePath is substituted when persistence is enabled and no
	// layer names a path.
	FallbackStoragePath = "radata"
)

// layer is a partial record. A nil field means "not set by this layer".
type layer struct {
	StorageMode  *models.StorageMode
	StoragePath  *string
	LocalStorage *bool
	Persistence  *bool
	Realtime     *bool
	ChunkSize    *int
	TimeoutMs    *int
	QuotaBytes   *int64
}

func hardDefaults() layer {
	return layer{
		LocalStorage: ptr(false),
		Persistence:  ptr(false),
		Realtime:     ptr(true),
		ChunkSize:    ptr(DefaultChunkSize),
		TimeoutMs:    ptr(DefaultTimeoutMs),
	}
}

// mergeLayers folds layers left to right. Set fields of a later layer replace
// earlier ones; pointers are swapped, never written through, so no layer is
// mutated.
func mergeLayers(layers ...layer) (layer, error) {
	var merged layer
	for i := range layers {
		if err := mergo.Merge(&merged, layers[i], mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return layer{}, fmt.Errorf("error merging resolution layers: %w", err)
		}
	}

	return merged, nil
}

// validate checks value ranges of the fields this layer sets.
func (l layer) validate() error {
	if l.ChunkSize != nil && *l.ChunkSize <= 0 {
		return invalidArgument("chunkSize must be positive, got %d", *l.ChunkSize)
	}
	if l.TimeoutMs != nil && *l.TimeoutMs < 0 {
		return invalidArgument("timeoutMs must be non-negative, got %d", *l.TimeoutMs)
	}
	if l.QuotaBytes != nil && *l.QuotaBytes < 0 {
		return invalidArgument("quotaBytes must be non-negative, got %d", *l.QuotaBytes)
	}
	if l.StorageMode != nil && !slices.Contains(models.StorageModes, *l.StorageMode) {
		return invalidArgument("unknown storage mode %q", *l.StorageMode)
	}

	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
