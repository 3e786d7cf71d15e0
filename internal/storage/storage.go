package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Store remembers which event keys were delivered, and with which content
// digest. A key delivered with a different digest counts as unseen.
type Store interface {
	Close() error
	Seen(key string, digest uint64) (bool, error)
	Mark(key string, digest uint64) error
}

// Digest hashes the content of an event for change detection.
func Digest(content []byte) uint64 {
	return xxhash.Sum64(content)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	defaultTTL             = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
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

// noopStore never remembers anything, so every event is treated as new.
type noopStore struct{}

func (noopStore) Close() error                      { return nil }
func (noopStore) Seen(string, uint64) (bool, error) { return false, nil }
func (noopStore) Mark(string, uint64) error         { return nil }
