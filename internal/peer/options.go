package peer

import (
	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/graph"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/models"
)

// Option customises a factory call.
type Option func(*settings)

type settings struct {
	constructor engine.Constructor
	logger      *logger.Logger
	environment *models.Environment
	preset      string
}

func newSettings(opts []Option) settings {
	s := settings{
		constructor: graph.Open,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithConstructor replaces the bundled engine with c.
func WithConstructor(c engine.Constructor) Option {
	return func(s *settings) {
		if c != nil {
			s.constructor = c
		}
	}
}

// WithLogger sets the logger advisories and lifecycle events are written
// to. It is also passed to the constructor through the context.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEnvironment injects the runtime description used to pick a durable
// backend. [NewAuto] takes the environment as an argument and ignores this
// option; servers are always treated as server-like.
func WithEnvironment(env models.Environment) Option {
	return func(s *settings) {
		s.environment = &env
	}
}

// WithPreset layers the named preset under the scenario defaults of
// [NewClient] and [NewAuto]. [NewPreset] takes the name as an argument and
// [NewServer] rejects a preset.
func WithPreset(name string) Option {
	return func(s *settings) {
		s.preset = name
	}
}
