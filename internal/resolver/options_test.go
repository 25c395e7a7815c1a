package resolver

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-graph-peer/models"
)

func TestParseClientOptions(t *testing.T) {
	raw := map[string]any{
		KeyStorageMode:  "IndexedDB",
		KeyStoragePath:  "graph",
		KeyLocalStorage: false,
		KeyPersistence:  true,
		KeyRealtime:     true,
		KeyChunkSize:    float64(300),
		KeyTimeoutMs:    20,
		KeyQuotaBytes:   json.Number("1048576"),
	}

	opts, err := ParseClientOptions(raw)
	require.NoError(t, err)

	require.NotNil(t, opts.StorageMode)
	assert.Equal(t, models.StorageIndexedDB, *opts.StorageMode)
	assert.Equal(t, "graph", *opts.StoragePath)
	assert.False(t, *opts.LocalStorage)
	assert.True(t, *opts.Persistence)
	assert.True(t, *opts.Realtime)
	assert.Equal(t, 300, *opts.ChunkSize)
	assert.Equal(t, 20, *opts.TimeoutMs)
	assert.Equal(t, int64(1048576), *opts.QuotaBytes)
}

func TestParseClientOptions_Empty(t *testing.T) {
	opts, err := ParseClientOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, ClientOptions{}, opts)
}

func TestParseOptions_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		server bool
		raw    map[string]any
		msg    string
	}{
		{name: "unknown key", raw: map[string]any{"radisk": true}, msg: "unknown option"},
		{name: "localStorage on server", server: true, raw: map[string]any{KeyLocalStorage: true}, msg: "unknown option"},
		{name: "string chunk", raw: map[string]any{KeyChunkSize: "100"}, msg: "must be an integer"},
		{name: "fractional timeout", raw: map[string]any{KeyTimeoutMs: 1.5}, msg: "must be an integer"},
		{name: "numeric flag", raw: map[string]any{KeyRealtime: 1}, msg: "must be a boolean"},
		{name: "numeric path", raw: map[string]any{KeyStoragePath: 7}, msg: "must be a string"},
		{name: "bad mode", raw: map[string]any{KeyStorageMode: "cloud"}, msg: "unknown storage mode"},
		{name: "zero chunk", raw: map[string]any{KeyChunkSize: 0}, msg: "chunkSize must be positive"},
		{name: "negative quota", server: true, raw: map[string]any{KeyQuotaBytes: int64(-1)}, msg: "quotaBytes must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.server {
				_, err = ParseServerOptions(tt.raw)
			} else {
				_, err = ParseClientOptions(tt.raw)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.True(t, strings.Contains(err.Error(), tt.msg), err.Error())
		})
	}
}

func TestParseClientOptions_IntRange(t *testing.T) {
	big := int64(math.MaxInt32) + 1

	for _, key := range []string{KeyChunkSize, KeyTimeoutMs} {
		t.Run(key, func(t *testing.T) {
			opts, err := ParseClientOptions(map[string]any{key: big})
			if strconv.IntSize == 32 {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Contains(t, err.Error(), "out of range")
				return
			}
			require.NoError(t, err)
			got := opts.ChunkSize
			if key == KeyTimeoutMs {
				got = opts.TimeoutMs
			}
			require.NotNil(t, got)
			assert.EqualValues(t, big, *got)
		})
	}
}

// TestParseServerOptions_FeedsResolve verifies that parsed options plug into
// the server scenario.
func TestParseServerOptions_FeedsResolve(t *testing.T) {
	opts, err := ParseServerOptions(map[string]any{
		KeyStoragePath: "/srv/graph",
		KeyChunkSize:   64,
	})
	require.NoError(t, err)

	res, err := Resolve(Request{Scenario: ScenarioServer, Overrides: opts})
	require.NoError(t, err)
	assert.Equal(t, "/srv/graph", res.Record.StoragePath)
	assert.Equal(t, 64, res.Record.ChunkSize)
	assert.Empty(t, res.Advisories)
}

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario("Server")
	require.NoError(t, err)
	assert.Equal(t, ScenarioServer, sc)

	_, err = ParseScenario("desktop")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseOverrides(t *testing.T) {
	t.Run("server scenario uses the server key set", func(t *testing.T) {
		o, err := ParseOverrides(ScenarioServer, map[string]any{KeyChunkSize: 10})
		require.NoError(t, err)
		assert.IsType(t, ServerOptions{}, o)

		_, err = ParseOverrides(ScenarioServer, map[string]any{KeyLocalStorage: true})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("other scenarios use the client key set", func(t *testing.T) {
		for _, s := range []Scenario{ScenarioClient, ScenarioPreset, ScenarioAuto} {
			o, err := ParseOverrides(s, map[string]any{KeyLocalStorage: true})
			require.NoError(t, err, s)
			assert.IsType(t, ClientOptions{}, o, s)
		}
	})

	t.Run("empty map means no overrides", func(t *testing.T) {
		o, err := ParseOverrides(ScenarioClient, nil)
		require.NoError(t, err)
		assert.Nil(t, o)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := ParseOverrides("edge", map[string]any{KeyChunkSize: 1})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}
