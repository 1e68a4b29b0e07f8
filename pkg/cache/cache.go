// Package cache stores rendered backgrounds keyed by everything that
// determines their pixels.
//
// Only seeded requests are cacheable: an unseeded request draws fresh
// randomness on every call, so a stored result would never be valid again.
// Keys are built by a [Keyer]; the default keyer hashes the request with
// SHA-256 so that keys have a fixed length regardless of the parameters.
//
// Three backends are provided:
//
//   - [NullCache] stores nothing (caching disabled)
//   - [FileCache] keeps entries under a local directory (CLI)
//   - [RedisCache] shares entries between server replicas
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLArtifact bounds how long a rendered background is kept.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts lists the inputs that determine a composited image.
type ArtifactKeyOpts struct {
	Mode   string   `json:"mode"`
	Colors []string `json:"colors"`
	Params string   `json:"params"`
	Seed   uint64   `json:"seed"`
	Format string   `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey keys a background applied to the foreground whose content
	// hash is inputHash. An empty inputHash keys a bare background.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// hashKey returns prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (NullCache) Close() error { return nil }
