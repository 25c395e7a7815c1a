package models

// Node is a single vertex of the graph: a soul (unique id) and its fields.
// Field values are scalars or soul references encoded as {"#": soul}.
type Node struct {
	Soul   string         `json:"soul" msgpack:"soul"`
	Fields map[string]any `json:"fields" msgpack:"fields"`

	// UpdatedAt is the unix-millisecond timestamp of the last local write.
	UpdatedAt int64 `json:"updated_at" msgpack:"updated_at"`
}
