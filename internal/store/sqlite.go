// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/migrations"
)

// DefaultLocalStorageFile is the SQLite file used when the localStorage mode
// has no namespace.
const DefaultLocalStorageFile = "localstorage.db"

// maxRowsPerStatement keeps one INSERT below SQLite's bound-variable limit.
const maxRowsPerStatement = 400

// sqliteStorage is the SQLite-backed implementation of [Backend]. It keeps
// every node as one row of the "nodes" table.
type sqliteStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLite opens the SQLite file at path, creating it when missing, and
// applies pending migrations.
func NewSQLite(ctx context.Context, path string, log *logger.Logger) (Backend, error) {
	if path == "" {
		path = DefaultLocalStorageFile
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		log.Err(err).Str("func", "NewSQLite").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}

	if err = migrations.Migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewSQLite").Str("path", path).Msg("connected to database successfully")

	return newSQLiteStorage(conn, log), nil
}

func newSQLiteStorage(db *sql.DB, log *logger.Logger) *sqliteStorage {
	return &sqliteStorage{db: db, logger: log}
}

func (s *sqliteStorage) PutBatch(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for part := range slices.Chunk(entries, maxRowsPerStatement) {
		query, args, err := buildUpsertNodesQuery(part)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.logger.Err(err).
				Str("func", "sqliteStorage.PutBatch").
				Int("entries", len(part)).
				Msg("failed to upsert nodes")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (s *sqliteStorage) Get(ctx context.Context, soul string) ([]byte, error) {
	query, args, err := sq.Select("value").
		From("nodes").
		Where(sq.Eq{"soul": soul}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNodeNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (s *sqliteStorage) Size(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("COALESCE(SUM(LENGTH(value)), 0)").
		From("nodes").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var size int64
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&size); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return size, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// buildUpsertNodesQuery builds one multi-row INSERT that replaces existing
// values of the same soul.
func buildUpsertNodesQuery(entries []Entry) (string, []any, error) {
	builder := sq.Insert("nodes").Columns("soul", "value")
	for _, e := range entries {
		builder = builder.Values(e.Soul, e.Value)
	}

	return builder.
		Suffix("ON CONFLICT(soul) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
}
