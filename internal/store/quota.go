package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
)

// quotaStorage rejects batches that would grow the wrapped backend past its
// quota. The running total is seeded from [Backend.Size] once and tracked
// incrementally afterwards.
type quotaStorage struct {
	Backend

	mu    sync.Mutex
	quota int64
	used  int64
}

// WithQuota wraps backend so that [Backend.Size] never exceeds quota bytes.
func WithQuota(ctx context.Context, backend Backend, quota int64) (Backend, error) {
	used, err := backend.Size(ctx)
	if err != nil {
		return nil, fmt.Errorf("error measuring storage: %w", err)
	}

	return &quotaStorage{Backend: backend, quota: quota, used: used}, nil
}

func (q *quotaStorage) PutBatch(ctx context.Context, entries []Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	// last write of a soul wins inside one batch
	latest := make(map[string]int, len(entries))
	for _, e := range entries {
		latest[e.Soul] = len(e.Value)
	}

	delta := int64(0)
	for soul, size := range latest {
		old, err := q.Backend.Get(ctx, soul)
		if err != nil && !errors.Is(err, ErrNodeNotFound) {
			return err
		}
		delta += int64(size - len(old))
	}

	if q.used+delta > q.quota {
		return fmt.Errorf("%w: %s used, batch needs %s more, limit %s", ErrQuotaExceeded,
			humanize.IBytes(uint64(q.used)), humanize.IBytes(uint64(max(delta, 0))), humanize.IBytes(uint64(q.quota)))
	}

	if err := q.Backend.PutBatch(ctx, entries); err != nil {
		return err
	}
	q.used += delta
	return nil
}

func (q *quotaStorage) Size(context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.used, nil
}
