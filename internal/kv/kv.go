// Package kv provides the durable key-value mapping that backs the terminal's
// local cache. Two backends exist: a JSON-file store for standalone terminals
// and a Redis store for terminals deployed next to a local Redis.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// KV is a durable key-to-string mapping. Every Set must be visible to all
// subsequent Gets in the same process.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
