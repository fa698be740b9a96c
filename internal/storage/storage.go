// Package storage provides durable key-value backends for user preferences
// and the local contact outbox.
package storage

import (
	"fmt"

	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/logger"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// KV is a durable string key-value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open opens the named backend at path. path is ignored for the memory
// backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, errors.E(errors.Op("storage.Open"), errors.KindConfig,
			fmt.Sprintf("unknown storage backend %q", backend))
	}
}

// OpenOrMemory opens the named backend, falling back to an in-memory store
// when it cannot be opened. Preferences then last only for this process.
func OpenOrMemory(backend, path string) KV {
	kv, err := Open(backend, path)
	if err != nil {
		logger.WithComponent("storage").Warn("falling back to in-memory storage",
			"backend", backend, "path", path, "error", err)
		return NewMemory()
	}
	return kv
}
