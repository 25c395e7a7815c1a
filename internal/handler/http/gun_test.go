package http

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/mock"
	"github.com/MKhiriev/go-graph-peer/internal/wire"
	"github.com/MKhiriev/go-graph-peer/models"
)

// relayFixture runs the full router on a real listener and captures the
// hub's subscription so tests can emit local changes.
type relayFixture struct {
	server *httptest.Server
	engine *mock.MockEngine
	h      *Handler

	mu     sync.Mutex
	notify func(models.Node)
}

func newRelayFixture(t *testing.T) *relayFixture {
	t.Helper()

	f := &relayFixture{}
	ctrl := gomock.NewController(t)
	f.engine = mock.NewMockEngine(ctrl)
	f.engine.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(fn func(models.Node)) func() {
		f.mu.Lock()
		f.notify = fn
		f.mu.Unlock()
		return func() {}
	})

	opts := engine.FromRecord(models.Record{Realtime: true, ChunkSize: 1})
	f.h = NewHandler(f.engine, opts, logger.Nop())
	f.server = httptest.NewServer(f.h.Init())
	t.Cleanup(func() {
		f.h.Close()
		f.server.Close()
	})
	return f
}

func (f *relayFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(f.server.URL, "http")+gunPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readFrame(t *testing.T, ws *websocket.Conn) models.Message {
	t.Helper()

	var msg models.Message
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func TestGun_PutIsMergedAndAcked(t *testing.T) {
	f := newRelayFixture(t)
	node := models.Node{Soul: "doc", Fields: map[string]any{"v": "1"}, UpdatedAt: 7}
	f.engine.EXPECT().Merge(gomock.Any(), node).Return(true, nil)

	ws := f.dial(t)
	put := wire.PutMessage(node)
	require.NoError(t, ws.WriteJSON(put))

	ack := readFrame(t, ws)
	assert.Equal(t, models.MessageAck, ack.Type)
	assert.Equal(t, put.ID, ack.ReplyTo)
	assert.Empty(t, ack.Err)
}

func TestGun_BroadcastsLocalChanges(t *testing.T) {
	f := newRelayFixture(t)

	a := f.dial(t)
	b := f.dial(t)
	require.Eventually(t, func() bool { return f.h.hub.len() == 2 }, 2*time.Second, 10*time.Millisecond)

	f.mu.Lock()
	notify := f.notify
	f.mu.Unlock()
	require.NotNil(t, notify)

	node := models.Node{Soul: "doc", Fields: map[string]any{"v": "2"}, UpdatedAt: 9}
	notify(node)

	for _, ws := range []*websocket.Conn{a, b} {
		msg := readFrame(t, ws)
		assert.Equal(t, models.MessagePut, msg.Type)
		require.NotNil(t, msg.Node)
		assert.Equal(t, "doc", msg.Node.Soul)
		assert.Equal(t, "2", msg.Node.Fields["v"])
	}
}

func TestGun_CloseDisconnectsPeers(t *testing.T) {
	f := newRelayFixture(t)

	ws := f.dial(t)
	require.Eventually(t, func() bool { return f.h.hub.len() == 1 }, 2*time.Second, 10*time.Millisecond)

	f.h.Close()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err)

	// no new peers after close
	late, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(f.server.URL, "http")+gunPath, nil)
	if err == nil {
		defer late.Close()
		require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err = late.ReadMessage()
		assert.Error(t, err)
	}
}
