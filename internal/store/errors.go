// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by backends to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNodeNotFound is returned when no value is stored under a soul.
	ErrNodeNotFound = errors.New("node was not found")

	// ErrQuotaExceeded is returned when a write would push the store past
	// its configured quota. Nothing from the rejected batch is written.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnsupportedMode is returned by [Open] for a storage mode it has no
	// backend for.
	ErrUnsupportedMode = errors.New("unsupported storage mode")

	// ErrStorageClosed is returned by operations on a closed backend.
	ErrStorageClosed = errors.New("storage is closed")
)

// Low-level database operation errors of the SQLite backend. These are
// wrapped together with the driver error.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
