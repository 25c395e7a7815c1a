package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-graph-peer/internal/adapter"
	"github.com/MKhiriev/go-graph-peer/internal/config"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/peer"
	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/internal/server"
	"github.com/MKhiriev/go-graph-peer/internal/tui"
	"github.com/MKhiriev/go-graph-peer/models"
)

// ErrServerScenario is returned when the client is configured with the
// server scenario, which only the relay binary serves.
var ErrServerScenario = errors.New("the server scenario is served by the relay binary")

type App struct {
	cfg *config.StructuredConfig
	out io.Writer

	newPicker PickerFactory
	newRelay  func(address string) (adapter.RelayAdapter, error)
	options   []peer.Option

	logger *logger.Logger
}

// Option customises an [App].
type Option func(*App)

// WithPicker replaces the terminal preset picker.
func WithPicker(f PickerFactory) Option {
	return func(a *App) { a.newPicker = f }
}

// WithRelay replaces the HTTP relay client used for discovery.
func WithRelay(f func(address string) (adapter.RelayAdapter, error)) Option {
	return func(a *App) { a.newRelay = f }
}

// WithPeerOptions passes options through to the peer factories.
func WithPeerOptions(opts ...peer.Option) Option {
	return func(a *App) { a.options = append(a.options, opts...) }
}

// NewApp builds the client runtime. The resolved record is written to out
// as indented JSON once the peer has started.
func NewApp(cfg *config.StructuredConfig, info models.AppBuildInfo, out io.Writer, logger *logger.Logger, opts ...Option) *App {
	a := &App{
		cfg: cfg,
		out: out,
		newPicker: func(peers []string, env models.Environment) PresetPicker {
			return tui.New(peers, env, info, logger)
		},
		newRelay: func(address string) (adapter.RelayAdapter, error) {
			return adapter.NewHTTPRelayAdapter(address, cfg.Discovery.Timeout, logger)
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the peer and blocks until ctx is cancelled or the process is
// signalled. Quitting the picker is not an error.
func (a *App) Run(ctx context.Context) error {
	p, err := a.Start(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	return server.Run(ctx, a.logger, p.Close)
}

// Start discovers peers, asks for a preset when configured to, starts the
// peer and prints its record.
func (a *App) Start(ctx context.Context) (*peer.Peer, error) {
	node := a.cfg.Node

	scenario, err := node.ParsedScenario()
	if err != nil {
		return nil, err
	}
	if scenario == resolver.ScenarioServer {
		return nil, ErrServerScenario
	}

	opts, err := node.ClientOptions()
	if err != nil {
		return nil, err
	}

	peers := a.discover(ctx, node.Peers)

	env := node.Environment()
	options := append([]peer.Option{peer.WithLogger(a.logger)}, a.options...)
	if env != nil {
		options = append(options, peer.WithEnvironment(*env))
	}

	preset := node.Preset
	if node.Interactive {
		preset, err = a.newPicker(peers, environmentOrDefault(env)).PickPreset(ctx)
		if err != nil {
			return nil, err
		}
		scenario = resolver.ScenarioPreset
	}

	var p *peer.Peer
	switch scenario {
	case resolver.ScenarioPreset:
		p, err = peer.NewPreset(ctx, preset, peers, opts, options...)
	case resolver.ScenarioAuto:
		options = append(options, peer.WithPreset(preset))
		p, err = peer.NewAuto(ctx, environmentOrDefault(env), peers, opts, options...)
	default:
		options = append(options, peer.WithPreset(preset))
		p, err = peer.NewClient(ctx, peers, opts, options...)
	}
	if err != nil {
		return nil, err
	}

	if err = a.printRecord(p.Record); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// discover returns seed extended with the relay's endpoints. A failed
// discovery keeps seed.
func (a *App) discover(ctx context.Context, seed []string) []string {
	address := a.cfg.Discovery.URL
	if address == "" {
		return seed
	}

	relay, err := a.newRelay(address)
	if err != nil {
		a.logger.Warn().Err(err).Str("relay", address).Msg("invalid relay address, using configured peers")
		return seed
	}

	peers, err := adapter.Discover(ctx, relay, seed, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Str("relay", address).Msg("peer discovery failed, using configured peers")
		return seed
	}
	return peers
}

func (a *App) printRecord(rec models.Record) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("error printing record: %w", err)
	}
	return nil
}

func environmentOrDefault(env *models.Environment) models.Environment {
	if env == nil {
		return models.BrowserEnvironment()
	}
	return *env
}
