// Package kvstore provides the session-scoped key-value storage behind the
// draft-bill cache. Every operation is a single-key atomic read or write;
// there is no cross-key consistency guarantee, and callers must treat a
// missing record as absent rather than as corruption.
package kvstore

import (
	"context"

	"github.com/naayikhata/khata-go/internal/domain"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = domain.ErrNotFound

// Store is the injectable storage abstraction. Backends: in-process map
// (tests), a state directory on disk (single terminal), Redis (shops with
// more than one counter).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
