// Package peer holds the factory call sites that turn a scenario and its
// overrides into a running engine: [NewClient], [NewServer], [NewPreset] and
// [NewAuto].
//
// Each factory resolves the configuration, logs the advisories raised while
// doing so, flattens the record into engine options and hands them to the
// engine constructor.
package peer
