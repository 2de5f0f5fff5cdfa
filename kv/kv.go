package kv

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when nothing is stored under the key.
	ErrNotFound = errors.New("key not found")

	// ErrCorrupted can be returned by Get when the stored value fails its integrity check.
	ErrCorrupted = errors.New("stored value is corrupted")

	// ErrUnknownBackend is returned by Open.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Storage is implemented by every backend. Get and Set read and replace whole values.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the named backend rooted at pathname. For the dir backend pathname is a directory, for
// sqlite it is the database file; the memory backend ignores it.
func Open(backend string, pathname string) (Storage, error) {
	switch backend {
	case BackendDir, "":
		return NewDir(pathname)
	case BackendSQLite:
		return NewSQLite(pathname)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%q: %w", backend, ErrUnknownBackend)
	}
}
