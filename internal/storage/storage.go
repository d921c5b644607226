// Package storage provides the durable key-value backends the data store
// mirrors its collections into. Each collection occupies one named entry
// holding the full JSON-serialized sequence of records; every persist
// replaces the entry wholesale.
package storage

import (
	"context"
	"errors"
)

// Entry keys for the two collections. The names are part of the stored
// data layout and must stay stable across releases.
const (
	PropertiesKey = "pm_properties"
	TenantsKey    = "pm_tenants"
)

// ErrNotFound is returned by Read when the entry has never been written.
var ErrNotFound = errors.New("storage: entry not found")

// Backend is a durable key-value store holding the collection entries.
// Implementations must make Write visible to a subsequent Read on the
// same backend; cross-process consistency is last-writer-wins and is not
// guaranteed beyond that.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
	Close() error
}
