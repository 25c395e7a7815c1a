package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

type levelDBStorage struct {
	db *leveldb.DB
}

// NewLevelDB opens (or creates) a LevelDB directory at path. It backs the
// fileSystem storage mode.
func NewLevelDB(path string) (Backend, error) {
	if path == "" {
		return nil, errors.New("leveldb storage needs a directory path")
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("error opening leveldb at %q: %w", path, err)
	}
	return &levelDBStorage{db: db}, nil
}

func (l *levelDBStorage) PutBatch(_ context.Context, entries []Entry) error {
	batch := new(leveldb.Batch)
	for _, e := range entries {
		batch.Put([]byte(e.Soul), e.Value)
	}

	if err := l.db.Write(batch, nil); err != nil {
		return mapLevelDBError(err)
	}
	return nil
}

func (l *levelDBStorage) Get(_ context.Context, soul string) ([]byte, error) {
	v, err := l.db.Get([]byte(soul), nil)
	if err != nil {
		return nil, mapLevelDBError(err)
	}
	return v, nil
}

func (l *levelDBStorage) Size(context.Context) (int64, error) {
	iter := l.db.NewIterator(nil, nil)
	defer iter.Release()

	var size int64
	for iter.Next() {
		size += int64(len(iter.Value()))
	}
	if err := iter.Error(); err != nil {
		return 0, mapLevelDBError(err)
	}
	return size, nil
}

func (l *levelDBStorage) Close() error {
	return l.db.Close()
}

func mapLevelDBError(err error) error {
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return ErrNodeNotFound
	case errors.Is(err, leveldb.ErrClosed):
		return ErrStorageClosed
	default:
		return err
	}
}
