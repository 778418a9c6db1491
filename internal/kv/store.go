// ABOUTME: Key-value store contract consumed by the persistence gateway.
// ABOUTME: Backends: badger, SQLite, and in-memory; Charm KV lives in internal/charm.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value exists for the key.
	ErrNotFound = errors.New("key not found")

	// ErrReadOnly is returned by Set when the store cannot accept writes.
	ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")
)

// Store is a minimal string-keyed blob store with no transactions.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
