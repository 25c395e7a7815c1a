package models

// MessageType names the kind of frame exchanged between peers.
type MessageType string

const (
	MessagePut MessageType = "put"
	MessageGet MessageType = "get"
	MessageAck MessageType = "ack"
)

// Message is the frame peers exchange over the realtime transport.
type Message struct {
	ID   string      `json:"id"`
	Type MessageType `json:"type"`
	Soul string      `json:"soul,omitempty"`
	Node *Node       `json:"node,omitempty"`

	// ReplyTo carries the ID of the message an ack or get answer responds to.
	ReplyTo string `json:"reply_to,omitempty"`
	Err     string `json:"err,omitempty"`
}
