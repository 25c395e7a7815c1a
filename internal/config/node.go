package config

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/models"
)

// ParsedScenario returns the configured scenario.
func (n Node) ParsedScenario() (resolver.Scenario, error) {
	return resolver.ParseScenario(n.Scenario)
}

// Environment returns the configured runtime, or nil when no environment
// flag is set so the resolver picks its scenario default.
func (n Node) Environment() *models.Environment {
	if !n.ServerLike && !n.HasLargeStorage && !n.PreferLargeStorage {
		return nil
	}
	return &models.Environment{
		ServerLike:         n.ServerLike,
		HasLargeStorage:    n.HasLargeStorage,
		PreferLargeStorage: n.PreferLargeStorage,
	}
}

// ClientOptions decodes Overrides for the client, preset and auto scenarios.
func (n Node) ClientOptions() (resolver.ClientOptions, error) {
	raw, err := n.overrideMap()
	if err != nil {
		return resolver.ClientOptions{}, err
	}
	return resolver.ParseClientOptions(raw)
}

// ServerOptions decodes Overrides for the server scenario.
func (n Node) ServerOptions() (resolver.ServerOptions, error) {
	raw, err := n.overrideMap()
	if err != nil {
		return resolver.ServerOptions{}, err
	}
	return resolver.ParseServerOptions(raw)
}

func (n Node) overrideMap() (map[string]any, error) {
	if n.Overrides == "" {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(n.Overrides), &raw); err != nil {
		return nil, fmt.Errorf("%w: overrides must be a JSON object: %w", ErrInvalidNodeConfigs, err)
	}
	return raw, nil
}
