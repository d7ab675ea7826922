package store

import (
	"context"
	"time"
)

// KeyValue abstracts the shared atomic store the session layer runs on.
// All cross-instance coordination relies on the backing store's native
// atomic get-and-remove and compare-and-delete; no extra locking layer
// sits on top. A ttl of zero means the entry does not expire.
type KeyValue interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)

	// TakeOnce atomically reads and removes the entry. Exactly one
	// concurrent caller succeeds; the rest observe a miss.
	TakeOnce(ctx context.Context, key string) ([]byte, error)

	Remove(ctx context.Context, key string) error

	// RemoveIf removes the entry only while it still holds the expected
	// value. Returns whether a removal happened.
	RemoveIf(ctx context.Context, key string, expected []byte) (bool, error)
}
