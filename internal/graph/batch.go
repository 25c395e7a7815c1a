package graph

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/store"
	"github.com/MKhiriev/go-graph-peer/models"
)

// batcher buffers node writes and flushes them to the backend once chunk
// nodes are pending or until has passed since the first pending write. With
// until <= 0 every write is flushed immediately.
type batcher struct {
	backend store.Backend
	chunk   int
	until   time.Duration
	logger  *logger.Logger

	mu       sync.Mutex
	pending  map[string]models.Node
	order    []string
	inflight map[string]models.Node

	// flushMu keeps batches in write order
	flushMu sync.Mutex
	kick    chan struct{}
}

func newBatcher(backend store.Backend, chunk int, until time.Duration, logger *logger.Logger) *batcher {
	return &batcher{
		backend: backend,
		chunk:   chunk,
		until:   until,
		logger:  logger,
		pending: make(map[string]models.Node),
		kick:    make(chan struct{}, 1),
	}
}

// add queues n, replacing any pending write of the same soul. It flushes
// synchronously when the batch is full and returns the flush error.
func (b *batcher) add(ctx context.Context, n models.Node) error {
	b.mu.Lock()
	if _, ok := b.pending[n.Soul]; !ok {
		b.order = append(b.order, n.Soul)
	}
	b.pending[n.Soul] = n
	full := len(b.pending) >= b.chunk
	b.mu.Unlock()

	if full || b.until <= 0 {
		return b.flush(ctx)
	}

	select {
	case b.kick <- struct{}{}:
	default:
	}
	return nil
}

// lookup returns the newest unflushed version of soul.
func (b *batcher) lookup(soul string) (models.Node, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n, ok := b.pending[soul]; ok {
		return n, true
	}
	n, ok := b.inflight[soul]
	return n, ok
}

// pendingLen returns the number of nodes waiting for a flush.
func (b *batcher) pendingLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// flush writes every pending node as one batch. Nodes of a failed batch
// are dropped.
func (b *batcher) flush(ctx context.Context) error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	nodes := make([]models.Node, 0, len(b.order))
	for _, soul := range b.order {
		nodes = append(nodes, b.pending[soul])
	}
	b.inflight = b.pending
	b.pending = make(map[string]models.Node)
	b.order = nil
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.inflight = nil
		b.mu.Unlock()
	}()

	entries := make([]store.Entry, 0, len(nodes))
	for _, n := range nodes {
		data, err := store.EncodeNode(n)
		if err != nil {
			return err
		}
		entries = append(entries, store.Entry{Soul: n.Soul, Value: data})
	}

	if err := b.backend.PutBatch(ctx, entries); err != nil {
		return fmt.Errorf("error flushing %d nodes: %w", len(entries), err)
	}

	b.logger.Debug().Int("nodes", len(entries)).Msg("batch flushed")
	return nil
}

// Run is the timer side of the batcher: after each first write into an
// empty batch it waits until and flushes.
func (b *batcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.kick:
		}

		t := time.NewTimer(b.until)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}

		if err := b.flush(context.WithoutCancel(ctx)); err != nil {
			b.logger.Err(err).Msg("background flush failed")
		}
	}
}
