// Package storage caches raw lookup responses locally.
package storage

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic cache key
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Store keeps API response bodies keyed by CacheKey.
type Store interface {
	Close() error
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// Options controls retention for concrete store implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return NoopStore(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// CacheKey derives the key for an address looked up with apiKey. Case and
// whitespace differences in the address map to the same key; different API
// keys never share entries.
func CacheKey(apiKey, address string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(address), " "))
	sum := sha1.Sum([]byte(apiKey + "\x00" + norm))
	return hex.EncodeToString(sum[:])
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// NoopStore returns a Store that never holds anything.
func NoopStore() Store { return noopStore{} }

type noopStore struct{}

func (noopStore) Close() error                     { return nil }
func (noopStore) Get(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) Put(string, []byte) error         { return nil }
