// Package cache stores recorded traces so repeated runs of the same
// algorithm on the same input skip the producer.
//
// # Backends
//
//   - [NullCache] never stores anything; the default.
//   - [FileCache] keeps JSON entries under a directory, for the CLI.
//   - [RedisCache] shares entries between server replicas.
//   - [MongoCache] keeps entries in a collection with a TTL index.
//
// All backends store opaque bytes; pkg/trace owns the encoding.
//
// # Keys
//
// A [Keyer] derives keys from the algorithm ID, input and parameters. Keys
// are content hashes, so equal runs share an entry regardless of who asked.
// [ScopedKeyer] prefixes keys to keep callers apart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend connections.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer derives cache keys.
type Keyer interface {
	// TraceKey identifies the trace of one run.
	TraceKey(algorithm string, input, params any) string

	// RenderKey identifies a rendered artifact of one trace step.
	RenderKey(traceKey string, step int, format string) string
}

// DefaultKeyer hashes key components as canonical JSON.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TraceKey hashes the algorithm, input and parameters. Map keys are sorted
// by encoding/json, so parameter order does not matter.
func (DefaultKeyer) TraceKey(algorithm string, input, params any) string {
	return hashKey("trace", algorithm, input, params)
}

// RenderKey hashes a trace key with the step and output format.
func (DefaultKeyer) RenderKey(traceKey string, step int, format string) string {
	return hashKey("render", traceKey, step, format)
}
