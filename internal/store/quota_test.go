package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithQuota_RejectsOverflow(t *testing.T) {
	ctx := context.Background()
	b, err := WithQuota(ctx, NewMemory(), 10)
	require.NoError(t, err)

	require.NoError(t, b.PutBatch(ctx, []Entry{{Soul: "a", Value: make([]byte, 6)}}))

	err = b.PutBatch(ctx, []Entry{{Soul: "b", Value: make([]byte, 5)}})
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "limit 10 B")

	// rejected batch left nothing behind
	_, err = b.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNodeNotFound)

	size, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), size)
}

// TestWithQuota_OverwriteCountsDelta verifies that replacing a value only
// charges the difference.
func TestWithQuota_OverwriteCountsDelta(t *testing.T) {
	ctx := context.Background()
	b, err := WithQuota(ctx, NewMemory(), 10)
	require.NoError(t, err)

	require.NoError(t, b.PutBatch(ctx, []Entry{{Soul: "a", Value: make([]byte, 8)}}))
	require.NoError(t, b.PutBatch(ctx, []Entry{{Soul: "a", Value: make([]byte, 10)}}))
	require.NoError(t, b.PutBatch(ctx, []Entry{{Soul: "a", Value: make([]byte, 2)}}))

	size, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)
}

// TestWithQuota_SeedsFromExisting verifies that data written before the
// wrapper was applied counts against the quota.
func TestWithQuota_SeedsFromExisting(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	require.NoError(t, inner.PutBatch(ctx, []Entry{{Soul: "a", Value: make([]byte, 9)}}))

	b, err := WithQuota(ctx, inner, 10)
	require.NoError(t, err)

	err = b.PutBatch(ctx, []Entry{{Soul: "b", Value: make([]byte, 2)}})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestWithQuota_DuplicateSoulInBatch(t *testing.T) {
	ctx := context.Background()
	b, err := WithQuota(ctx, NewMemory(), 4)
	require.NoError(t, err)

	require.NoError(t, b.PutBatch(ctx, []Entry{
		{Soul: "a", Value: make([]byte, 4)},
		{Soul: "a", Value: make([]byte, 3)},
	}))

	size, err := b.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
}
