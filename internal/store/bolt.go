package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/boltdb/bolt"
)

var nodesBucket = []byte("nodes")

type boltStorage struct {
	db *bolt.DB
}

// NewBolt opens (or creates) a bolt file at path with a single "nodes"
// bucket. It backs the indexedDB storage mode, path being the namespace.
func NewBolt(path string) (Backend, error) {
	if path == "" {
		return nil, errors.New("bolt storage needs a namespace path")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("error opening bolt file %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(nodesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating nodes bucket: %w", err)
	}

	return &boltStorage{db: db}, nil
}

func (b *boltStorage) PutBatch(_ context.Context, entries []Entry) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(nodesBucket)
		for _, e := range entries {
			if err := bucket.Put([]byte(e.Soul), e.Value); err != nil {
				return err
			}
		}
		return nil
	})
	return mapBoltError(err)
}

func (b *boltStorage) Get(_ context.Context, soul string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(nodesBucket).Get([]byte(soul))
		if v == nil {
			return ErrNodeNotFound
		}
		// v is only valid inside the transaction
		value = slices.Clone(v)
		return nil
	})
	if err != nil {
		return nil, mapBoltError(err)
	}
	return value, nil
}

func (b *boltStorage) Size(context.Context) (int64, error) {
	var size int64
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(nodesBucket).ForEach(func(_, v []byte) error {
			size += int64(len(v))
			return nil
		})
	})
	return size, mapBoltError(err)
}

func (b *boltStorage) Close() error {
	return b.db.Close()
}

func mapBoltError(err error) error {
	if errors.Is(err, bolt.ErrDatabaseNotOpen) {
		return ErrStorageClosed
	}
	return err
}
