package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naayikhata/khata-go/internal/infrastructure/kvstore"
)

// Both local backends must satisfy the same contract; Redis is covered by
// the same suite in environments that have one (skipped here).
func backends(t *testing.T) map[string]kvstore.Store {
	t.Helper()
	fileStore, err := kvstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]kvstore.Store{
		"memory": kvstore.NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "bill:missing")
			assert.ErrorIs(t, err, kvstore.ErrNotFound)

			require.NoError(t, s.Set(ctx, "bill:a", []byte(`{"id":"a"}`)))
			got, err := s.Get(ctx, "bill:a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"a"}`, string(got))

			// overwrite wins
			require.NoError(t, s.Set(ctx, "bill:a", []byte(`{"id":"a2"}`)))
			got, err = s.Get(ctx, "bill:a")
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"a2"}`, string(got))

			require.NoError(t, s.Delete(ctx, "bill:a"))
			_, err = s.Get(ctx, "bill:a")
			assert.ErrorIs(t, err, kvstore.ErrNotFound)

			// deleting a missing key is a no-op
			assert.NoError(t, s.Delete(ctx, "bill:a"))
		})
	}
}

func TestStore_KeysByPrefix(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "bill:a", []byte("1")))
			require.NoError(t, s.Set(ctx, "bill:b", []byte("2")))
			require.NoError(t, s.Set(ctx, "session:token", []byte("3")))

			keys, err := s.Keys(ctx, "bill:")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"bill:a", "bill:b"}, keys)
		})
	}
}
