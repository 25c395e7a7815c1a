package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/MKhiriev/go-graph-peer/models"
)

// EncodeNode serialises a node for storage.
func EncodeNode(n models.Node) ([]byte, error) {
	data, err := msgpack.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("error encoding node %q: %w", n.Soul, err)
	}
	return data, nil
}

// DecodeNode is the inverse of [EncodeNode].
func DecodeNode(data []byte) (models.Node, error) {
	var n models.Node
	if err := msgpack.Unmarshal(data, &n); err != nil {
		return models.Node{}, fmt.Errorf("error decoding node: %w", err)
	}
	return n, nil
}
