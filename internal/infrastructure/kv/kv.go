// Package kv provides the whole-key get/set document store shared by all
// execution contexts. Values are opaque JSON documents; the store offers
// no locking or transactions beyond single-key reads and writes, so
// multi-key updates must be serialized by callers.
package kv

import "context"

// Store is the persistent key-value contract. Implementations wrap
// unreachable-medium failures with entity.ErrStoreUnavailable.
type Store interface {
	// Get returns the document stored under key. ok is false when the
	// key was never written or has been deleted.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the document stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
