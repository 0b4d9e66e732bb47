// Package store implements the external Store collaborator (spec §6.2):
// a durable i32 -> bytes map with upsert, read, and a one-shot key
// iterator used at load.
package store

import "context"

// Store is a durable map from item id to its encoded record bytes.
type Store interface {
	// Upsert writes data under key, idempotently.
	Upsert(ctx context.Context, key int32, data []byte) error

	// Read returns the bytes stored under key and whether key was found.
	Read(ctx context.Context, key int32) (data []byte, found bool, err error)

	// ReadAllKeys returns every key currently in the store, in no
	// particular order. Used once, at load.
	ReadAllKeys(ctx context.Context) ([]int32, error)

	// Close releases any resources held by the store.
	Close() error
}
