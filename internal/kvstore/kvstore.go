// Package kvstore provides string-keyed blob storage. Values are read and
// written wholesale; there are no partial reads or updates.
package kvstore

import (
	"context"
	"fmt"
	"strings"
)

// Store reads and writes string blobs by key.
type Store interface {
	// Get returns the blob stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put replaces the blob stored under key.
	Put(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open creates a Store for the named backend. path is ignored by the memory
// backend.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		if path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		if path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
