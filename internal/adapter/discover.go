package adapter

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
)

// Discover asks relay for its endpoints and appends the ones not already in
// seed. The order of seed is kept; discovered endpoints follow in the order
// the relay reported them.
func Discover(ctx context.Context, relay RelayAdapter, seed []string, log *logger.Logger) ([]string, error) {
	list, err := relay.Peers(ctx)
	if err != nil {
		return nil, err
	}

	found := list.Endpoints()
	if len(found) == 0 {
		return nil, ErrNoEndpoints
	}

	peers := slices.Clone(seed)
	added := 0
	for _, p := range found {
		if !slices.Contains(peers, p) {
			peers = append(peers, p)
			added++
		}
	}

	log.Info().Int("discovered", len(found)).Int("added", added).Msg("peers discovered")
	return peers, nil
}
