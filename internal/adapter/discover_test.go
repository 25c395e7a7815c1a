package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/mock"
	"github.com/MKhiriev/go-graph-peer/models"
)

func TestDiscover(t *testing.T) {
	tests := []struct {
		name    string
		seed    []string
		list    models.PeerList
		want    []string
		wantErr error
	}{
		{
			name: "self first then peers",
			list: models.PeerList{Self: "ws://relay/gun", Peers: []string{"ws://a/gun", "ws://b/gun"}},
			want: []string{"ws://relay/gun", "ws://a/gun", "ws://b/gun"},
		},
		{
			name: "seed order kept and duplicates dropped",
			seed: []string{"ws://b/gun"},
			list: models.PeerList{Self: "ws://relay/gun", Peers: []string{"ws://b/gun", "ws://relay/gun"}},
			want: []string{"ws://b/gun", "ws://relay/gun"},
		},
		{
			name: "relay without realtime reports only peers",
			list: models.PeerList{Peers: []string{"ws://a/gun"}},
			want: []string{"ws://a/gun"},
		},
		{
			name:    "nothing reported",
			list:    models.PeerList{Peers: []string{}},
			wantErr: ErrNoEndpoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			relay := mock.NewMockRelayAdapter(ctrl)
			ctx := context.Background()
			relay.EXPECT().Peers(ctx).Return(tt.list, nil)

			got, err := Discover(ctx, relay, tt.seed, logger.Nop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover_DoesNotMutateSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	relay := mock.NewMockRelayAdapter(ctrl)
	relay.EXPECT().Peers(gomock.Any()).Return(models.PeerList{Self: "ws://relay/gun"}, nil)

	seed := make([]string, 1, 4)
	seed[0] = "ws://a/gun"

	_, err := Discover(context.Background(), relay, seed, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"ws://a/gun"}, seed)
	assert.Equal(t, "", seed[:2][1], "backing array untouched")
}

func TestDiscover_RelayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	relay := mock.NewMockRelayAdapter(ctrl)
	boom := errors.New("boom")
	relay.EXPECT().Peers(gomock.Any()).Return(models.PeerList{}, boom)

	_, err := Discover(context.Background(), relay, nil, logger.Nop())

	assert.ErrorIs(t, err, boom)
}
