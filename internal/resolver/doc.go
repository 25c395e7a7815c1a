// Package resolver turns a scenario, an optional preset and caller overrides
// into one fully populated [models.Record].
//
// Resolution layers values in a fixed order, later layers winning per field:
//  1. hard defaults
//  2. the selected preset, if any
//  3. scenario defaults (client, server, auto)
//  4. caller overrides
//
// Resolution is pure. Non-fatal findings, such as a substituted storage path,
// are returned as [models.Advisory] values next to the record instead of being
// logged.
package resolver
