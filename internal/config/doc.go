// Package config provides configuration loading, merging, and validation
// facilities for the go-graph-peer binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry point is [GetStructuredConfig]. Node overrides are carried
// as a JSON object and validated with the same rules the resolver applies to
// programmatic callers.
package config
