package wire

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-graph-peer/models"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second

	// maxMessageSize caps one incoming frame.
	maxMessageSize = 1 << 20
)

// Conn is a websocket connection to one remote peer. Send is safe for
// concurrent use; reading belongs to [Serve].
type Conn struct {
	ws     *websocket.Conn
	remote string

	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

// NewConn wraps an established websocket connection.
func NewConn(ws *websocket.Conn, remote string) *Conn {
	ws.SetReadLimit(maxMessageSize)
	return &Conn{ws: ws, remote: remote, done: make(chan struct{})}
}

// Remote returns the address or URL of the other side.
func (c *Conn) Remote() string {
	return c.remote
}

// Send writes msg as one JSON text frame.
func (c *Conn) Send(msg models.Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(msg)
}

// Done is closed once the connection is closed.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Close sends a close frame and releases the connection. Safe to call more
// than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()

		err = c.ws.Close()
		close(c.done)
	})
	return err
}
