package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was
// deleted.
var ErrNotFound = errors.New("store: key not found")

// Well-known keys. All persisted state lives under these three.
const (
	KeyFiles    = "seller_pulse_files"
	KeyPrices   = "seller_pulse_prices"
	KeyViewMode = "seller_pulse_view_mode"
)

// KV is the persistence boundary. Values are opaque JSON blobs; the caller
// owns the encoding.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close()
}
