package engine

import (
	"maps"
	"net"
	"slices"

	"github.com/MKhiriev/go-graph-peer/models"
)

// Option keys of the flat record handed to a [Constructor].
const (
	KeyPeers        = "peers"
	KeyLocalStorage = "localStorage"
	KeyRadisk       = "radisk"
	KeyStore        = "store"
	KeyFile         = "file"
	KeyWS           = "ws"
	KeyChunk        = "chunk"
	KeyUntil        = "until"
	KeyMax          = "max"
	KeyWeb          = "web"
)

// Options is the flat key-value record an engine constructor consumes.
type Options map[string]any

// FromRecord flattens a resolved record. "max" is only present when a quota
// is set and "file" only when a path is.
func FromRecord(rec models.Record) Options {
	peers := slices.Clone(rec.Peers)
	if peers == nil {
		peers = []string{}
	}
	opts := Options{
		KeyPeers:        peers,
		KeyLocalStorage: rec.LocalStorage,
		KeyRadisk:       rec.Persistence,
		KeyStore:        rec.StorageMode.String(),
		KeyWS:           rec.Realtime,
		KeyChunk:        rec.ChunkSize,
		KeyUntil:        rec.TimeoutMs,
	}
	if rec.StoragePath != "" {
		opts[KeyFile] = rec.StoragePath
	}
	if rec.QuotaBytes != nil {
		opts[KeyMax] = *rec.QuotaBytes
	}

	return opts
}

// WithListener returns a copy of o with the "web" listener attached.
func (o Options) WithListener(l net.Listener) Options {
	out := maps.Clone(o)
	out[KeyWeb] = l
	return out
}

// Public returns a copy of o without values that cannot be serialised,
// suitable for exposing over HTTP.
func (o Options) Public() Options {
	out := maps.Clone(o)
	delete(out, KeyWeb)
	return out
}

// Peers returns the "peers" entry.
func (o Options) Peers() []string {
	peers, _ := o[KeyPeers].([]string)
	return peers
}

// Bool returns a boolean entry, false when missing or mistyped.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Int returns an integer entry, 0 when missing or mistyped.
func (o Options) Int(key string) int {
	switch n := o[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

// String returns a string entry, "" when missing or mistyped.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Quota returns the "max" entry and whether it is set.
func (o Options) Quota() (int64, bool) {
	q, ok := o[KeyMax].(int64)
	return q, ok
}

// Listener returns the "web" entry, nil for client nodes.
func (o Options) Listener() net.Listener {
	l, _ := o[KeyWeb].(net.Listener)
	return l
}

// StorageMode returns the "store" entry as a mode, none when unset.
func (o Options) StorageMode() models.StorageMode {
	mode, err := models.ParseStorageMode(o.String(KeyStore))
	if err != nil {
		return models.StorageNone
	}
	return mode
}
