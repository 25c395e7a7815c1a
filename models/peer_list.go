package models

// PeerList is what a relay reports about the mesh it belongs to.
type PeerList struct {
	// Self is the websocket endpoint of the relay as seen by the caller.
	// Empty when the relay runs without the realtime transport.
	Self  string   `json:"self,omitempty"`
	Peers []string `json:"peers"`
}

// Endpoints returns Self followed by Peers, skipping blanks and duplicates.
func (l PeerList) Endpoints() []string {
	seen := make(map[string]struct{}, len(l.Peers)+1)
	out := make([]string, 0, len(l.Peers)+1)
	for _, p := range append([]string{l.Self}, l.Peers...) {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
