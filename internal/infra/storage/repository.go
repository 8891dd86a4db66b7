package storage

import (
	"context"
	"errors"
)

var (
	// ErrEntryNotFound is returned when the named entry has never been written
	ErrEntryNotFound = errors.New("entry not found")
)

// DefaultListingsKey names the persisted listing collection.
const DefaultListingsKey = "codeMarketListings"

// EntryRepository stores opaque serialized values under a name.
// Encoding is the caller's concern.
type EntryRepository interface {
	// Get retrieves an entry, or ErrEntryNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put creates or replaces an entry
	Put(ctx context.Context, key string, value []byte) error
}
