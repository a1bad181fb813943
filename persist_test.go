package psmap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/hupe1980/psmap/blobstore"
	"github.com/hupe1980/psmap/internal/compress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	stores := map[string]blobstore.Store{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := newMixedLayout(t)

			require.NoError(t, Save(ctx, store, "graph/attrs.psm", m, WithCompression(CompressionZSTD)))

			got, err := Load[nodeAttr](ctx, store, "graph/attrs.psm", WithMapOptions(WithMergeThreshold(16)))
			require.NoError(t, err)
			assert.Equal(t, slices.Collect(m.Entries()), slices.Collect(got.Entries()))
			assert.Equal(t, m.SortedLen(), got.SortedLen())
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load[int](context.Background(), blobstore.NewMemoryStore(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad", []byte("garbage")))

	_, err := Load[int](ctx, store, "bad")
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestSaveAll(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	maps := make(map[string]*Map[int])
	for i := range 5 {
		m := New[int]()
		for id := range 10 * (i + 1) {
			m.Add(id, id*i)
		}
		maps[fmt.Sprintf("shard-%d.psm", i)] = m
	}

	require.NoError(t, SaveAll(ctx, store, maps, WithUploadConcurrency(2)))

	names, err := store.List(ctx, "shard-")
	require.NoError(t, err)
	assert.Len(t, names, 5)

	for name, m := range maps {
		got, err := Load[int](ctx, store, name)
		require.NoError(t, err)
		assert.Equal(t, slices.Collect(m.Entries()), slices.Collect(got.Entries()))
	}
}

// failingStore rejects writes for names containing "bad".
type failingStore struct {
	*blobstore.MemoryStore
}

var errRejected = errors.New("rejected")

func (s failingStore) Put(ctx context.Context, name string, data []byte) error {
	if strings.Contains(name, "bad") {
		return errRejected
	}
	return s.MemoryStore.Put(ctx, name, data)
}

func TestSaveAll_UploadFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&logs, nil))

	store := failingStore{blobstore.NewMemoryStore()}
	maps := map[string]*Map[int]{
		"good.psm": New[int](),
		"bad.psm":  New[int](),
	}

	err := SaveAll(context.Background(), store, maps, WithSnapshotLogger(logger))
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, err.Error(), "bad.psm")
	assert.Contains(t, logs.String(), "snapshot upload completed with failures")
}

func TestSave_UploadFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&logs, nil))

	store := failingStore{blobstore.NewMemoryStore()}
	err := Save(context.Background(), store, "bad.psm", New[int](), WithSnapshotLogger(logger))
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, logs.String(), "snapshot save failed")
}

func TestSave_EncodeFailure(t *testing.T) {
	store := blobstore.NewMemoryStore()
	err := Save(context.Background(), store, "bad.psm", New[int](), WithCompression(Compression(42)))
	assert.ErrorIs(t, err, compress.ErrUnknownType)
	assert.Contains(t, err.Error(), `psmap: save "bad.psm"`)

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
