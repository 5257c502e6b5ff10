// Package kv is the small durable key/value layer behind the persisted
// search term, genre selection and wishlist.
//
// Each key is read and written independently; no backend offers
// atomicity across keys. Values are opaque strings.
package kv

import (
	"context"
	"strings"

	"github.com/agentstation/bookmap/pkg/errors"
)

// Store is a durable string key/value store.
type Store interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the store's resources.
	Close() error
}

// Backend names a Store implementation.
type Backend string

// Supported backends.
const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendSQLite Backend = "sqlite"
)

// Config selects and configures a backend.
type Config struct {
	Backend Backend
	Path    string // File or SQLite database path
	URL     string // Redis URL, e.g. redis://localhost:6379/0
	Prefix  string // Redis key prefix
}

// Open creates the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch Backend(strings.ToLower(string(cfg.Backend))) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(cfg.Path)
	case BackendRedis:
		return NewRedisFromURL(ctx, cfg.URL, cfg.Prefix)
	case BackendSQLite:
		return NewSQLite(ctx, cfg.Path)
	default:
		return nil, errors.NewConfigError("store", "unsupported backend "+string(cfg.Backend), nil)
	}
}
