// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"encoding/json"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/MKhiriev/go-graph-peer/models"
)

// Override keys accepted by [ParseClientOptions] and [ParseServerOptions].
const (
	KeyStorageMode  = "storageMode"
	KeyStoragePath  = "storagePath"
	KeyLocalStorage = "localStorage"
	KeyPersistence  = "persistence"
	KeyRealtime     = "realtime"
	KeyChunkSize    = "chunkSize"
	KeyTimeoutMs    = "timeoutMs"
	KeyQuotaBytes   = "quotaBytes"
)

var (
	clientKeys = []string{
		KeyStorageMode, KeyStoragePath, KeyLocalStorage, KeyPersistence,
		KeyRealtime, KeyChunkSize, KeyTimeoutMs, KeyQuotaBytes,
	}
	serverKeys = []string{
		KeyStorageMode, KeyStoragePath, KeyPersistence,
		KeyRealtime, KeyChunkSize, KeyTimeoutMs, KeyQuotaBytes,
	}
)

// Overrides is a caller-supplied partial record. Only [ClientOptions] and
// [ServerOptions] implement it.
type Overrides interface {
	overrideLayer() (layer, error)
	allows(Scenario) bool
}

// ClientOptions holds the overrides a client-side node recognises. Nil fields
// are left to lower layers.
type ClientOptions struct {
	StorageMode  *models.StorageMode `json:"storageMode,omitempty"`
	StoragePath  *string             `json:"storagePath,omitempty"`
	LocalStorage *bool               `json:"localStorage,omitempty"`
	Persistence  *bool               `json:"persistence,omitempty"`
	Realtime     *bool               `json:"realtime,omitempty"`
	ChunkSize    *int                `json:"chunkSize,omitempty"`
	TimeoutMs    *int                `json:"timeoutMs,omitempty"`
	QuotaBytes   *int64              `json:"quotaBytes,omitempty"`
}

// ServerOptions holds the overrides a server-side node recognises. A server
// has no small key-value store, so there is no LocalStorage field.
type ServerOptions struct {
	StorageMode *models.StorageMode `json:"storageMode,omitempty"`
	StoragePath *string             `json:"storagePath,omitempty"`
	Persistence *bool               `json:"persistence,omitempty"`
	Realtime    *bool               `json:"realtime,omitempty"`
	ChunkSize   *int                `json:"chunkSize,omitempty"`
	TimeoutMs   *int                `json:"timeoutMs,omitempty"`
	QuotaBytes  *int64              `json:"quotaBytes,omitempty"`
}

func (o ClientOptions) overrideLayer() (layer, error) {
	l := layer{
		StoragePath:  cloned(o.StoragePath),
		LocalStorage: cloned(o.LocalStorage),
		Persistence:  cloned(o.Persistence),
		Realtime:     cloned(o.Realtime),
		ChunkSize:    cloned(o.ChunkSize),
		TimeoutMs:    cloned(o.TimeoutMs),
		QuotaBytes:   cloned(o.QuotaBytes),
	}
	mode, err := canonicalMode(o.StorageMode)
	if err != nil {
		return layer{}, err
	}
	l.StorageMode = mode

	return l, l.validate()
}

func (o ClientOptions) allows(s Scenario) bool {
	return s == ScenarioClient || s == ScenarioPreset || s == ScenarioAuto
}

func (o ServerOptions) overrideLayer() (layer, error) {
	l := layer{
		StoragePath: cloned(o.StoragePath),
		Persistence: cloned(o.Persistence),
		Realtime:    cloned(o.Realtime),
		ChunkSize:   cloned(o.ChunkSize),
		TimeoutMs:   cloned(o.TimeoutMs),
		QuotaBytes:  cloned(o.QuotaBytes),
	}
	mode, err := canonicalMode(o.StorageMode)
	if err != nil {
		return layer{}, err
	}
	l.StorageMode = mode

	return l, l.validate()
}

func (o ServerOptions) allows(s Scenario) bool {
	return s == ScenarioServer
}

// ParseClientOptions converts a dynamically typed override map (decoded JSON,
// env, flags) into [ClientOptions]. Unknown keys and wrongly typed values
// fail with [ErrInvalidArgument].
func ParseClientOptions(raw map[string]any) (ClientOptions, error) {
	l, err := parseOverrides(raw, clientKeys)
	if err != nil {
		return ClientOptions{}, err
	}

	return ClientOptions{
		StorageMode:  l.StorageMode,
		StoragePath:  l.StoragePath,
		LocalStorage: l.LocalStorage,
		Persistence:  l.Persistence,
		Realtime:     l.Realtime,
		ChunkSize:    l.ChunkSize,
		TimeoutMs:    l.TimeoutMs,
		QuotaBytes:   l.QuotaBytes,
	}, nil
}

// ParseServerOptions is [ParseClientOptions] for the server scenario. The
// key "localStorage" is not recognised here.
func ParseServerOptions(raw map[string]any) (ServerOptions, error) {
	l, err := parseOverrides(raw, serverKeys)
	if err != nil {
		return ServerOptions{}, err
	}

	return ServerOptions{
		StorageMode: l.StorageMode,
		StoragePath: l.StoragePath,
		Persistence: l.Persistence,
		Realtime:    l.Realtime,
		ChunkSize:   l.ChunkSize,
		TimeoutMs:   l.TimeoutMs,
		QuotaBytes:  l.QuotaBytes,
	}, nil
}

// ParseOverrides parses raw with the key set of scenario s: server options
// for [ScenarioServer], client options otherwise. A nil or empty map yields
// nil overrides.
func ParseOverrides(s Scenario, raw map[string]any) (Overrides, error) {
	if !slices.Contains(Scenarios, s) {
		return nil, invalidArgument("unknown scenario %q", s)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	if s == ScenarioServer {
		opts, err := ParseServerOptions(raw)
		if err != nil {
			return nil, err
		}
		return opts, nil
	}

	opts, err := ParseClientOptions(raw)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

func parseOverrides(raw map[string]any, allowed []string) (layer, error) {
	var l layer

	// sorted so the first reported error does not depend on map order
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !slices.Contains(allowed, key) {
			return layer{}, invalidArgument("unknown option %q, recognised options: %s", key, strings.Join(allowed, ", "))
		}

		var err error
		v := raw[key]
		switch key {
		case KeyStorageMode:
			var s string
			if s, err = asString(key, v); err == nil {
				var mode models.StorageMode
				if mode, err = models.ParseStorageMode(s); err != nil {
					err = invalidArgument("%v", err)
				}
				l.StorageMode = &mode
			}
		case KeyStoragePath:
			var s string
			s, err = asString(key, v)
			l.StoragePath = &s
		case KeyLocalStorage:
			l.LocalStorage, err = asBool(key, v)
		case KeyPersistence:
			l.Persistence, err = asBool(key, v)
		case KeyRealtime:
			l.Realtime, err = asBool(key, v)
		case KeyChunkSize:
			var n int
			n, err = asNativeInt(key, v)
			l.ChunkSize = &n
		case KeyTimeoutMs:
			var n int
			n, err = asNativeInt(key, v)
			l.TimeoutMs = &n
		case KeyQuotaBytes:
			var n int64
			n, err = asInt(key, v)
			l.QuotaBytes = &n
		}
		if err != nil {
			return layer{}, err
		}
	}

	return l, l.validate()
}

// maxExactFloat is the largest integer a float64 holds without rounding.
const maxExactFloat = 1 << 53

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidArgument("option %q must be a string, got %T", key, v)
	}
	return s, nil
}

func asBool(key string, v any) (*bool, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, invalidArgument("option %q must be a boolean, got %T", key, v)
	}
	return &b, nil
}

// asNativeInt is asInt limited to the platform int range.
func asNativeInt(key string, v any) (int, error) {
	n, err := asInt(key, v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, invalidArgument("option %q is out of range, got %d", key, n)
	}
	return int(n), nil
}

func asInt(key string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > maxExactFloat {
			return 0, invalidArgument("option %q must be an integer, got %v", key, n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, invalidArgument("option %q must be an integer, got %q", key, n.String())
		}
		return i, nil
	default:
		return 0, invalidArgument("option %q must be an integer, got %T", key, v)
	}
}

func canonicalMode(m *models.StorageMode) (*models.StorageMode, error) {
	if m == nil {
		return nil, nil
	}
	mode, err := models.ParseStorageMode(string(*m))
	if err != nil {
		return nil, invalidArgument("%v", err)
	}
	return &mode, nil
}

func cloned[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
