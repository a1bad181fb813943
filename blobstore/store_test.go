package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Put and Get", func(t *testing.T) {
		data := []byte("snapshot bytes")
		require.NoError(t, store.Put(ctx, "maps/a.psm", data))

		got, err := store.Get(ctx, "maps/a.psm")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		// Stored data is isolated from the caller's buffer.
		data[0] = 'X'
		got, err = store.Get(ctx, "maps/a.psm")
		require.NoError(t, err)
		assert.Equal(t, byte('s'), got[0])
	})

	t.Run("Put replaces", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "maps/b.psm", []byte("v1")))
		require.NoError(t, store.Put(ctx, "maps/b.psm", []byte("v2")))

		got, err := store.Get(ctx, "maps/b.psm")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "other/c.psm", []byte("c")))

		names, err := store.List(ctx, "maps/")
		require.NoError(t, err)
		assert.Equal(t, []string{"maps/a.psm", "maps/b.psm"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "maps/a.psm"))
		_, err := store.Get(ctx, "maps/a.psm")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting twice is fine.
		assert.NoError(t, store.Delete(ctx, "maps/a.psm"))
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(t.TempDir() + "/does-not-exist")
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_RejectsNamesOutsideRoot(t *testing.T) {
	parent := t.TempDir()
	store := NewLocalStore(filepath.Join(parent, "root"))
	ctx := context.Background()

	for _, name := range []string{"../escape", "a/../../escape", "/abs", ""} {
		assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), ErrInvalidName, name)
		_, err := store.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, store.Delete(ctx, name), ErrInvalidName, name)
	}

	_, err := os.Stat(filepath.Join(parent, "escape"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Names that stay under the root after cleaning are fine.
	require.NoError(t, store.Put(ctx, "a/../b", []byte("y")))
	data, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), data)
}

func TestRateLimitedStore(t *testing.T) {
	testStore(t, RateLimited(NewMemoryStore(), rate.NewLimiter(rate.Inf, 0)))
	testStore(t, RateLimited(NewMemoryStore(), nil))
}

func TestRateLimitedStore_Throttles(t *testing.T) {
	// 1 KiB/s with a 256 byte burst: 512 bytes need at least ~250ms.
	limiter := rate.NewLimiter(rate.Limit(1024), 256)
	store := RateLimited(NewMemoryStore(), limiter)

	start := time.Now()
	require.NoError(t, store.Put(context.Background(), "x", make([]byte, 512)))
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestRateLimitedStore_ContextCanceled(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(1), 1)
	store := RateLimited(NewMemoryStore(), limiter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "x", make([]byte, 16))
	assert.Error(t, err)
}
