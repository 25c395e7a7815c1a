// Package store provides the persistence backends a graph node writes its
// nodes to, one per [models.StorageMode]:
//   - none: process memory
//   - localStorage: an SQLite file with an embedded goose schema
//   - indexedDB: a bolt file with one bucket per namespace
//   - fileSystem: a LevelDB directory
//
// Backends store opaque encoded values keyed by soul; [EncodeNode] and
// [DecodeNode] convert between [models.Node] and those values. [Open] wraps
// the selected backend with a quota check when a quota is configured.
package store
