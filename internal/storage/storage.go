// Package storage provides the key-value namespaces that play the role of the
// browser's local storage. Each page session gets its own namespace; the API and
// the CLI reach the same records through whichever backend is configured.
//
// Writes are last-write-wins. Two processes mutating the same session at once can
// clobber each other's records, the same way two browser tabs can.
package storage

import (
	"context"
	"errors"
)

// ErrQuotaExceeded is returned when a write would push a namespace past its quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is one session's key-value namespace.
type Store interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key; removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend hands out per-session namespaces over a shared connection.
type Backend interface {
	Session(sessionID string) Store
	Ping(ctx context.Context) error
	Close() error
}
