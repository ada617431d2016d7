package storage

import "errors"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Provider is durable keyed storage. Each key holds one serialized
// collection which Put replaces wholesale; there are no partial writes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Keyed collections
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error

	// Utils
	GetConfigPath() string
}
