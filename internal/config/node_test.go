package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/models"
)

func TestNode_Environment(t *testing.T) {
	assert.Nil(t, Node{}.Environment())

	env := Node{ServerLike: true}.Environment()
	require.NotNil(t, env)
	assert.Equal(t, models.Environment{ServerLike: true}, *env)
}

func TestNode_ParsedScenario(t *testing.T) {
	s, err := Node{Scenario: "AUTO"}.ParsedScenario()
	require.NoError(t, err)
	assert.Equal(t, resolver.ScenarioAuto, s)

	_, err = Node{Scenario: "relay"}.ParsedScenario()
	assert.ErrorIs(t, err, resolver.ErrInvalidArgument)
}

func TestNode_ClientOptions(t *testing.T) {
	opts, err := Node{Overrides: `{"chunkSize": 10, "localStorage": false, "quotaBytes": 2048}`}.ClientOptions()
	require.NoError(t, err)

	require.NotNil(t, opts.ChunkSize)
	assert.Equal(t, 10, *opts.ChunkSize)
	require.NotNil(t, opts.LocalStorage)
	assert.False(t, *opts.LocalStorage)
	require.NotNil(t, opts.QuotaBytes)
	assert.EqualValues(t, 2048, *opts.QuotaBytes)
	assert.Nil(t, opts.TimeoutMs)
}

func TestNode_EmptyOverrides(t *testing.T) {
	c, err := Node{}.ClientOptions()
	require.NoError(t, err)
	assert.Equal(t, resolver.ClientOptions{}, c)

	s, err := Node{}.ServerOptions()
	require.NoError(t, err)
	assert.Equal(t, resolver.ServerOptions{}, s)
}

func TestNode_ServerOptions_RejectsClientKey(t *testing.T) {
	_, err := Node{Overrides: `{"localStorage": true}`}.ServerOptions()

	assert.ErrorIs(t, err, resolver.ErrInvalidArgument)
}

func TestNode_MalformedOverrides(t *testing.T) {
	_, err := Node{Overrides: `{"chunkSize":`}.ClientOptions()

	assert.ErrorIs(t, err, ErrInvalidNodeConfigs)
}
