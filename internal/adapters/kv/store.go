// Package kv defines the persistent key-value store interface and its
// backends. Every component persists through this interface; no component
// owns more than its own key namespace prefix.
package kv

import "context"

// Store provides string-keyed persistent storage. Keys are independent:
// there is no multi-key atomicity beyond SetMany, which is best-effort
// atomic (a transaction on the sqlite backend, a single locked section in
// memory). Store failures propagate to callers unmodified; no method
// retries internally.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, overwriting unconditionally.
	Set(ctx context.Context, key, value string) error

	// SetMany writes all pairs in one best-effort atomic operation. Readers
	// observe either all of the pairs or none of them.
	SetMany(ctx context.Context, pairs map[string]string) error

	// Remove deletes the named keys. Missing keys are not an error.
	Remove(ctx context.Context, keys ...string) error

	// Clear deletes every key in the store.
	Clear(ctx context.Context) error
}
