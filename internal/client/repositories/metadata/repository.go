// Package metadata is the client's key/value store. The session store keeps
// the access token, refresh token and serialized user under fixed keys.
package metadata

import "context"

type Repository interface {
	// Get returns common.ErrorNotFound for absent keys.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put upserts every pair.
	Put(ctx context.Context, pairs map[string][]byte) error
	// Fetch returns the subset of keys that exist; absent keys are simply
	// missing from the map.
	Fetch(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Delete is idempotent.
	Delete(ctx context.Context, keys ...string) error
}
