package peer

import (
	"context"
	"fmt"
	"net"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/models"
)

// Peer is a running engine together with the configuration it was built
// from.
type Peer struct {
	engine.Engine

	Record     models.Record
	Advisories []models.Advisory
}

// NewClient starts a client-side node.
func NewClient(ctx context.Context, peers []string, opts resolver.ClientOptions, options ...Option) (*Peer, error) {
	s := newSettings(options)
	return s.start(ctx, resolver.Request{
		Scenario:    resolver.ScenarioClient,
		Preset:      s.preset,
		Environment: s.environment,
		Peers:       peers,
		Overrides:   opts,
	}, nil)
}

// NewServer starts a relay node serving on l. The listener must already be
// bound; it is handed to the engine as the "web" option.
func NewServer(ctx context.Context, l net.Listener, peers []string, opts resolver.ServerOptions, options ...Option) (*Peer, error) {
	if l == nil {
		return nil, fmt.Errorf("%w: server needs a listener", resolver.ErrInvalidArgument)
	}

	s := newSettings(options)
	return s.start(ctx, resolver.Request{
		Scenario:    resolver.ScenarioServer,
		Preset:      s.preset,
		Environment: s.environment,
		Peers:       peers,
		Overrides:   opts,
	}, l)
}

// NewPreset starts a node configured by the named preset. Lookup ignores
// case; an unknown name fails with [resolver.ErrNotFound].
func NewPreset(ctx context.Context, name string, peers []string, opts resolver.ClientOptions, options ...Option) (*Peer, error) {
	s := newSettings(options)
	return s.start(ctx, resolver.Request{
		Scenario:    resolver.ScenarioPreset,
		Preset:      name,
		Environment: s.environment,
		Peers:       peers,
		Overrides:   opts,
	}, nil)
}

// NewAuto starts a node whose storage is chosen from env.
func NewAuto(ctx context.Context, env models.Environment, peers []string, opts resolver.ClientOptions, options ...Option) (*Peer, error) {
	s := newSettings(options)
	return s.start(ctx, resolver.Request{
		Scenario:    resolver.ScenarioAuto,
		Preset:      s.preset,
		Environment: &env,
		Peers:       peers,
		Overrides:   opts,
	}, nil)
}

// start resolves req and calls the constructor. Resolver errors are returned
// unchanged so callers can match them.
func (s settings) start(ctx context.Context, req resolver.Request, l net.Listener) (*Peer, error) {
	res, err := resolver.Resolve(req)
	if err != nil {
		s.logger.Err(err).Str("scenario", string(req.Scenario)).Msg("configuration rejected")
		return nil, err
	}
	s.logger.Advisories(res.Advisories)

	opts := engine.FromRecord(res.Record)
	if l != nil {
		opts = opts.WithListener(l)
	}

	e, err := s.constructor(s.logger.WithContext(ctx), opts)
	if err != nil {
		return nil, fmt.Errorf("error starting %s engine: %w", req.Scenario, err)
	}

	s.logger.Info().
		Str("scenario", string(req.Scenario)).
		Str("preset", req.Preset).
		Str("store", res.Record.StorageMode.String()).
		Str("path", res.Record.StoragePath).
		Int("chunk", res.Record.ChunkSize).
		Int("until", res.Record.TimeoutMs).
		Bool("ws", res.Record.Realtime).
		Msg("peer started")

	return &Peer{Engine: e, Record: res.Record, Advisories: res.Advisories}, nil
}
