package graph

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/store"
	"github.com/MKhiriev/go-graph-peer/models"
)

func memoryOptions() engine.Options {
	return engine.FromRecord(models.Record{
		StorageMode: models.StorageNone,
		Realtime:    false,
		ChunkSize:   10,
		TimeoutMs:   5,
	})
}

func openEngine(t *testing.T, opts engine.Options) engine.Engine {
	t.Helper()

	e, err := Open(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestOpen_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts engine.Options
	}{
		{name: "zero chunk", opts: engine.Options{engine.KeyChunk: 0, engine.KeyUntil: 1}},
		{name: "missing chunk", opts: engine.Options{engine.KeyUntil: 1}},
		{name: "negative until", opts: engine.Options{engine.KeyChunk: 1, engine.KeyUntil: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.opts)
			assert.ErrorIs(t, err, engine.ErrInvalidOptions)
		})
	}
}

func TestGraph_PutGet(t *testing.T) {
	e := openEngine(t, memoryOptions())
	ctx := context.Background()

	require.NoError(t, e.Put(ctx, "user/1", map[string]any{"name": "ann"}))
	first, err := e.Get(ctx, "user/1")
	require.NoError(t, err)

	require.NoError(t, e.Put(ctx, "user/1", map[string]any{"age": 30}))
	second, err := e.Get(ctx, "user/1")
	require.NoError(t, err)

	assert.Equal(t, "user/1", second.Soul)
	assert.Equal(t, "ann", second.Fields["name"], "earlier fields survive")
	assert.EqualValues(t, 30, second.Fields["age"])
	assert.Greater(t, second.UpdatedAt, first.UpdatedAt)

	// returned fields are a copy
	second.Fields["name"] = "bob"
	again, err := e.Get(ctx, "user/1")
	require.NoError(t, err)
	assert.Equal(t, "ann", again.Fields["name"])
}

func TestGraph_GetAfterFlush(t *testing.T) {
	e := openEngine(t, memoryOptions())
	ctx := context.Background()

	require.NoError(t, e.Put(ctx, "a", map[string]any{"v": "x"}))
	require.Eventually(t, func() bool {
		return e.(*graph).batch.pendingLen() == 0
	}, time.Second, 5*time.Millisecond)

	n, err := e.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "x", n.Fields["v"])
}

func TestGraph_Errors(t *testing.T) {
	e := openEngine(t, memoryOptions())
	ctx := context.Background()

	_, err := e.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNodeNotFound)

	assert.ErrorIs(t, e.Put(ctx, "", map[string]any{"a": 1}), engine.ErrEmptySoul)
	_, err = e.Get(ctx, "")
	assert.ErrorIs(t, err, engine.ErrEmptySoul)
	_, err = e.Merge(ctx, models.Node{})
	assert.ErrorIs(t, err, engine.ErrEmptySoul)

	require.NoError(t, e.Close())
	assert.NoError(t, e.Close(), "second Close is a no-op")

	assert.ErrorIs(t, e.Put(ctx, "a", map[string]any{"a": 1}), engine.ErrEngineClosed)
	_, err = e.Get(ctx, "a")
	assert.ErrorIs(t, err, engine.ErrEngineClosed)
	_, err = e.Merge(ctx, models.Node{Soul: "a"})
	assert.ErrorIs(t, err, engine.ErrEngineClosed)
}

func TestGraph_MergeIsLastWriterWins(t *testing.T) {
	e := openEngine(t, memoryOptions())
	ctx := context.Background()

	changed, err := e.Merge(ctx, models.Node{Soul: "doc", Fields: map[string]any{"a": "1", "b": "1"}, UpdatedAt: 100})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = e.Merge(ctx, models.Node{Soul: "doc", Fields: map[string]any{"a": "old"}, UpdatedAt: 50})
	require.NoError(t, err)
	assert.False(t, changed, "older version is ignored")

	changed, err = e.Merge(ctx, models.Node{Soul: "doc", Fields: map[string]any{"a": "same"}, UpdatedAt: 100})
	require.NoError(t, err)
	assert.False(t, changed, "equal timestamp is ignored")

	changed, err = e.Merge(ctx, models.Node{Soul: "doc", Fields: map[string]any{"a": "2"}, UpdatedAt: 200})
	require.NoError(t, err)
	assert.True(t, changed)

	n, err := e.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "2", "b": "1"}, n.Fields)
	assert.Equal(t, int64(200), n.UpdatedAt)
}

func TestGraph_Subscribe(t *testing.T) {
	e := openEngine(t, memoryOptions())
	ctx := context.Background()

	var (
		mu  sync.Mutex
		got []string
	)
	unsubscribe := e.Subscribe(func(n models.Node) {
		mu.Lock()
		got = append(got, n.Soul)
		mu.Unlock()
	})

	require.NoError(t, e.Put(ctx, "a", map[string]any{"v": 1}))
	_, err := e.Merge(ctx, models.Node{Soul: "b", Fields: map[string]any{"v": 1}, UpdatedAt: 1})
	require.NoError(t, err)
	_, err = e.Merge(ctx, models.Node{Soul: "b", Fields: map[string]any{"v": 0}, UpdatedAt: 0})
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()
	require.NoError(t, e.Put(ctx, "c", map[string]any{"v": 1}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b"}, got)
}

// TestGraph_CloseFlushesToDisk reopens a leveldb-backed engine and expects
// the writes that were still batched at Close.
func TestGraph_CloseFlushesToDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "radata")
	opts := engine.FromRecord(models.Record{
		StorageMode: models.StorageFileSystem,
		StoragePath: dir,
		Persistence: true,
		ChunkSize:   1000,
		TimeoutMs:   60_000,
	})
	ctx := context.Background()

	first, err := Open(ctx, opts)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "kept", map[string]any{"v": "yes"}))
	require.NoError(t, first.Close())

	second, err := Open(ctx, opts)
	require.NoError(t, err)
	defer second.Close()

	n, err := second.Get(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, "yes", n.Fields["v"])
}

func TestGraph_QuotaRejectsWrites(t *testing.T) {
	quota := int64(64)
	opts := engine.FromRecord(models.Record{
		StorageMode: models.StorageNone,
		ChunkSize:   1,
		TimeoutMs:   0,
		QuotaBytes:  &quota,
	})
	e := openEngine(t, opts)

	err := e.Put(context.Background(), "big", map[string]any{"blob": string(make([]byte, 256))})

	assert.True(t, errors.Is(err, store.ErrQuotaExceeded))
}

func listen(t *testing.T) net.Listener {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return l
}

func TestGraph_ServesRelayOnListener(t *testing.T) {
	l := listen(t)
	opts := engine.FromRecord(models.Record{
		StorageMode: models.StorageNone,
		Realtime:    true,
		ChunkSize:   10,
		TimeoutMs:   1,
	}).WithListener(l)
	e := openEngine(t, opts)

	resp, err := http.Get("http://" + l.Addr().String() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, e.ID(), body["id"])
}

// TestGraph_PeersExchangeWrites connects a client engine to a relay engine
// and checks that writes travel both ways.
func TestGraph_PeersExchangeWrites(t *testing.T) {
	ctx := context.Background()

	l := listen(t)
	relay := openEngine(t, engine.FromRecord(models.Record{
		StorageMode: models.StorageNone,
		Realtime:    true,
		ChunkSize:   10,
		TimeoutMs:   1,
	}).WithListener(l))

	client := openEngine(t, engine.FromRecord(models.Record{
		Peers:       []string{"http://" + l.Addr().String() + "/gun"},
		StorageMode: models.StorageNone,
		Realtime:    true,
		ChunkSize:   10,
		TimeoutMs:   1,
	}))
	require.Eventually(t, func() bool {
		return client.(*graph).mesh.size() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Put(ctx, "from/client", map[string]any{"v": "c"}))
	require.Eventually(t, func() bool {
		n, err := relay.Get(ctx, "from/client")
		return err == nil && n.Fields["v"] == "c"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, relay.Put(ctx, "from/relay", map[string]any{"v": "r"}))
	require.Eventually(t, func() bool {
		n, err := client.Get(ctx, "from/relay")
		return err == nil && n.Fields["v"] == "r"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGraph_UnreachablePeerDoesNotFailOpen(t *testing.T) {
	l := listen(t)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	e := openEngine(t, engine.FromRecord(models.Record{
		Peers:       []string{"ws://" + addr + "/gun", "ftp://nowhere"},
		StorageMode: models.StorageNone,
		Realtime:    true,
		ChunkSize:   10,
		TimeoutMs:   1,
	}))

	g := e.(*graph)
	assert.Equal(t, 0, g.mesh.size())
	assert.Equal(t, []string{"ws://" + addr + "/gun"}, g.mesh.urls, "invalid endpoints are skipped")
}

func TestGraph_RealtimeOffDoesNotDial(t *testing.T) {
	e := openEngine(t, engine.FromRecord(models.Record{
		Peers:       []string{"ws://127.0.0.1:1/gun"},
		StorageMode: models.StorageNone,
		Realtime:    false,
		ChunkSize:   10,
		TimeoutMs:   1,
	}))

	assert.Nil(t, e.(*graph).mesh)
}
