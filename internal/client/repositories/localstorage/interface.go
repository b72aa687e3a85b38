// Package localstorage is the client's persistent key/value store, the
// counterpart of a browser's localStorage. Values are opaque bytes.
package localstorage

import "context"

// Repository reads and writes single keys. Get returns (nil, nil) for an
// absent key; Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
