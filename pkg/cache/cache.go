// Package cache stores optimizer results keyed by graph content and options.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so the pipeline never builds key strings
// itself. A [ScopedKeyer] prefixes every key, which lets a deployment
// invalidate all entries by changing the scope.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// DefaultTTL is how long results stay cached when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ResultKeyOpts are the optimizer settings that influence a result.
type ResultKeyOpts struct {
	MaxPasses int `json:"max_passes"`
}

// ArtifactKeyOpts identify a rendered diagram of a result.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Weights bool   `json:"weights"`
	Title   string `json:"title,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies the result of optimizing the graph whose
	// canonical JSON hashes to graphHash.
	ResultKey(graphHash string, opts ResultKeyOpts) string

	// ArtifactKey identifies a diagram of the partitioned graph whose
	// canonical JSON hashes to graphHash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<sha256(graphHash, opts)>".
func (DefaultKeyer) ResultKey(graphHash string, opts ResultKeyOpts) string {
	return hashKey("result", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256(graphHash, opts)>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Clear empties c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "<kind>:<sha256 of graphHash and opts>". opts are plain
// structs, so encoding cannot fail.
func hashKey(kind, graphHash string, opts any) string {
	enc, _ := json.Marshal(opts)
	return kind + ":" + Hash(append([]byte(graphHash+"\x00"), enc...))
}

// NullCache never stores anything. It backs --no-cache and the "none"
// backend.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
