package wire

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-graph-peer/internal/engine"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/store"
	"github.com/MKhiriev/go-graph-peer/models"
)

// Serve reads frames from c and answers them against e until the connection
// fails or ctx is cancelled. It closes c before returning. A normal close by
// the remote side is reported as nil.
func Serve(ctx context.Context, c *Conn, e engine.Engine, log *logger.Logger) error {
	defer c.Close()

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	for {
		var msg models.Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("error reading frame from %s: %w", c.remote, err)
		}

		reply, err := Answer(ctx, e, msg)
		if err != nil {
			log.Warn().Err(err).
				Str("remote", c.remote).
				Str("type", string(msg.Type)).
				Str("soul", msg.Soul).
				Msg("frame rejected")
		}
		if reply == nil {
			continue
		}
		if err := c.Send(*reply); err != nil {
			return fmt.Errorf("error answering %s: %w", c.remote, err)
		}
	}
}

// Answer applies one incoming frame to e and returns the reply to send, if
// any. Acks are never answered. Failures are reported both as the returned
// error and as an ack carrying the error text.
func Answer(ctx context.Context, e engine.Engine, msg models.Message) (*models.Message, error) {
	switch msg.Type {
	case models.MessagePut:
		if msg.Node == nil {
			err := fmt.Errorf("%w: put frame without node", engine.ErrEmptySoul)
			return ack(msg, err), err
		}
		_, err := e.Merge(ctx, *msg.Node)
		return ack(msg, err), err

	case models.MessageGet:
		node, err := e.Get(ctx, msg.Soul)
		if errors.Is(err, store.ErrNodeNotFound) {
			return ack(msg, err), nil
		}
		if err != nil {
			return ack(msg, err), err
		}
		reply := PutMessage(node)
		reply.ReplyTo = msg.ID
		return &reply, nil

	case models.MessageAck:
		return nil, nil

	default:
		err := fmt.Errorf("unknown frame type %q", msg.Type)
		return ack(msg, err), err
	}
}

// PutMessage builds a put frame announcing node.
func PutMessage(node models.Node) models.Message {
	return models.Message{
		ID:   uuid.NewString(),
		Type: models.MessagePut,
		Soul: node.Soul,
		Node: &node,
	}
}

// GetMessage builds a get frame asking for soul.
func GetMessage(soul string) models.Message {
	return models.Message{
		ID:   uuid.NewString(),
		Type: models.MessageGet,
		Soul: soul,
	}
}

func ack(msg models.Message, err error) *models.Message {
	reply := &models.Message{
		ID:      uuid.NewString(),
		Type:    models.MessageAck,
		Soul:    msg.Soul,
		ReplyTo: msg.ID,
	}
	if err != nil {
		reply.Err = err.Error()
	}
	return reply
}

// SocketURL turns a peer endpoint into a websocket URL: http and https are
// mapped to ws and wss, ws and wss are kept, and a bare host gets ws://.
func SocketURL(endpoint string) (string, error) {
	if !strings.Contains(endpoint, "://") {
		endpoint = "ws://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid peer endpoint %q: %w", endpoint, err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid peer endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid peer endpoint %q: missing host", endpoint)
	}

	return u.String(), nil
}
