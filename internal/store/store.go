package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/models"
)

//go:generate mockgen -source=store.go -destination=../mock/store_mock.go -package=mock

// Entry is one encoded node queued for a batched write.
type Entry struct {
	Soul  string
	Value []byte
}

// Backend persists encoded nodes keyed by soul. Implementations are safe for
// concurrent use.
type Backend interface {
	// PutBatch writes all entries atomically where the backend allows it.
	PutBatch(ctx context.Context, entries []Entry) error

	// Get returns the value stored under soul or [ErrNodeNotFound].
	Get(ctx context.Context, soul string) ([]byte, error)

	// Size returns the number of value bytes currently stored.
	Size(ctx context.Context) (int64, error)

	Close() error
}

// Config selects and parameterises a backend.
type Config struct {
	Mode models.StorageMode

	// Path is the file or directory of the backend. Ignored for
	// [models.StorageNone].
	Path string

	// QuotaBytes caps [Backend.Size]. Nil means unlimited.
	QuotaBytes *int64
}

// Open opens the backend for cfg.Mode and, if a quota is set, wraps it with
// a quota check.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Mode {
	case models.StorageNone, "":
		backend = NewMemory()
	case models.StorageLocalStorage:
		backend, err = NewSQLite(ctx, cfg.Path, log)
	case models.StorageIndexedDB:
		backend, err = NewBolt(cfg.Path)
	case models.StorageFileSystem:
		backend, err = NewLevelDB(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, cfg.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening %s storage: %w", cfg.Mode, err)
	}

	log.Debug().
		Str("mode", cfg.Mode.String()).
		Str("path", cfg.Path).
		Msg("storage opened")

	if cfg.QuotaBytes != nil {
		return WithQuota(ctx, backend, *cfg.QuotaBytes)
	}
	return backend, nil
}
