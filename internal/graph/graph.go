package graph

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	myHTTP "github.com/MKhiriev/go-graph-peer/internal/handler/http"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/server"
	"github.com/MKhiriev/go-graph-peer/internal/store"
	"github.com/MKhiriev/go-graph-peer/internal/workers"
	"github.com/MKhiriev/go-graph-peer/models"
)

type graph struct {
	id      string
	backend store.Backend
	batch   *batcher
	mesh    *mesh
	workers *workers.Workers

	handler *myHTTP.Handler
	relay   server.Server

	logger *logger.Logger

	// writeMu serialises read-modify-write of nodes
	writeMu sync.Mutex

	subMu   sync.RWMutex
	subs    map[uint64]func(models.Node)
	nextSub uint64

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

var _ engine.Engine = (*graph)(nil)

// Open starts an engine for opts. It is the default [engine.Constructor].
// The logger is taken from ctx.
func Open(ctx context.Context, opts engine.Options) (engine.Engine, error) {
	log := logger.FromContext(ctx)

	chunk := opts.Int(engine.KeyChunk)
	if chunk <= 0 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d", engine.ErrInvalidOptions, engine.KeyChunk, chunk)
	}
	until := opts.Int(engine.KeyUntil)
	if until < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative, got %d", engine.ErrInvalidOptions, engine.KeyUntil, until)
	}

	cfg := store.Config{
		Mode: opts.StorageMode(),
		Path: opts.String(engine.KeyFile),
	}
	if q, ok := opts.Quota(); ok {
		cfg.QuotaBytes = &q
	}
	backend, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	g := &graph{
		id:      uuid.NewString(),
		backend: backend,
		logger:  log,
		subs:    make(map[uint64]func(models.Node)),
	}
	g.batch = newBatcher(backend, chunk, time.Duration(until)*time.Millisecond, log)

	jobs := []workers.Worker{g.batch}
	if opts.Bool(engine.KeyWS) && len(opts.Peers()) > 0 {
		g.mesh = newMesh(g, opts.Peers(), log)
		g.Subscribe(g.mesh.broadcast)
		g.mesh.redial(ctx)
		jobs = append(jobs, workers.Every(redialInterval, g.mesh.redial))
	}
	g.workers = workers.New(jobs...)
	g.workers.Start(context.WithoutCancel(ctx))

	if l := opts.Listener(); l != nil {
		g.handler = myHTTP.NewHandler(g, opts, log)
		g.relay, err = server.NewHTTPServer(l, g.handler.Init(), log)
		if err != nil {
			return nil, errors.Join(err, g.Close())
		}
		go g.relay.RunServer()
	}

	log.Info().
		Str("id", g.id).
		Str("store", cfg.Mode.String()).
		Bool("ws", opts.Bool(engine.KeyWS)).
		Int("peers", len(opts.Peers())).
		Bool("relay", g.relay != nil).
		Msg("engine started")

	return g, nil
}

func (g *graph) ID() string {
	return g.id
}

func (g *graph) Put(ctx context.Context, soul string, fields map[string]any) error {
	if g.closed.Load() {
		return engine.ErrEngineClosed
	}
	if soul == "" {
		return engine.ErrEmptySoul
	}

	g.writeMu.Lock()
	current, err := g.lookup(ctx, soul)
	if err != nil && !errors.Is(err, store.ErrNodeNotFound) {
		g.writeMu.Unlock()
		return err
	}

	node := models.Node{
		Soul:      soul,
		Fields:    overlay(current.Fields, fields),
		UpdatedAt: max(time.Now().UnixMilli(), current.UpdatedAt+1),
	}
	err = g.batch.add(ctx, node)
	g.writeMu.Unlock()
	if err != nil {
		return err
	}

	g.notify(node)
	return nil
}

func (g *graph) Get(ctx context.Context, soul string) (models.Node, error) {
	if g.closed.Load() {
		return models.Node{}, engine.ErrEngineClosed
	}
	if soul == "" {
		return models.Node{}, engine.ErrEmptySoul
	}

	node, err := g.lookup(ctx, soul)
	if err != nil {
		return models.Node{}, err
	}
	node.Fields = maps.Clone(node.Fields)
	return node, nil
}

// Merge applies node when it is newer than the local version. Its fields are
// laid over the local ones.
func (g *graph) Merge(ctx context.Context, node models.Node) (bool, error) {
	if g.closed.Load() {
		return false, engine.ErrEngineClosed
	}
	if node.Soul == "" {
		return false, engine.ErrEmptySoul
	}

	g.writeMu.Lock()
	current, err := g.lookup(ctx, node.Soul)
	switch {
	case err == nil && current.UpdatedAt >= node.UpdatedAt:
		g.writeMu.Unlock()
		return false, nil
	case err != nil && !errors.Is(err, store.ErrNodeNotFound):
		g.writeMu.Unlock()
		return false, err
	}

	merged := models.Node{
		Soul:      node.Soul,
		Fields:    overlay(current.Fields, node.Fields),
		UpdatedAt: node.UpdatedAt,
	}
	err = g.batch.add(ctx, merged)
	g.writeMu.Unlock()
	if err != nil {
		return false, err
	}

	g.notify(merged)
	return true, nil
}

func (g *graph) Subscribe(fn func(models.Node)) func() {
	g.subMu.Lock()
	id := g.nextSub
	g.nextSub++
	g.subs[id] = fn
	g.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.subMu.Lock()
			delete(g.subs, id)
			g.subMu.Unlock()
		})
	}
}

// Close stops the relay and the mesh, flushes what is pending and closes the
// backend.
func (g *graph) Close() error {
	g.closeOnce.Do(func() {
		g.closed.Store(true)

		if g.handler != nil {
			g.handler.Close()
		}
		if g.relay != nil {
			g.relay.Shutdown()
		}
		if g.mesh != nil {
			g.mesh.close()
		}
		g.workers.Stop()

		flushErr := g.batch.flush(context.Background())
		closeErr := g.backend.Close()
		g.closeErr = errors.Join(flushErr, closeErr)

		g.logger.Info().Str("id", g.id).Err(g.closeErr).Msg("engine closed")
	})
	return g.closeErr
}

// lookup reads the newest version of soul, unflushed writes first.
func (g *graph) lookup(ctx context.Context, soul string) (models.Node, error) {
	if n, ok := g.batch.lookup(soul); ok {
		return n, nil
	}

	data, err := g.backend.Get(ctx, soul)
	if err != nil {
		return models.Node{}, err
	}
	return store.DecodeNode(data)
}

func (g *graph) notify(node models.Node) {
	g.subMu.RLock()
	fns := make([]func(models.Node), 0, len(g.subs))
	for _, fn := range g.subs {
		fns = append(fns, fn)
	}
	g.subMu.RUnlock()

	for _, fn := range fns {
		n := node
		n.Fields = maps.Clone(node.Fields)
		fn(n)
	}
}

// overlay returns a new map with next laid over base.
func overlay(base, next map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(next))
	maps.Copy(out, base)
	maps.Copy(out, next)
	return out
}
