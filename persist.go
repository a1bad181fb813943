package psmap

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/psmap/blobstore"
	"golang.org/x/sync/errgroup"
)

// Save encodes m and writes it to store under name.
func Save[T any](ctx context.Context, store blobstore.Store, name string, m *Map[T], opts ...SnapshotOption) error {
	o := applySnapshotOptions(opts)

	var buf bytes.Buffer
	if _, err := m.Encode(&buf, opts...); err != nil {
		err = fmt.Errorf("psmap: save %q: %w", name, err)
		o.logger.LogSave(ctx, name, m.Len(), 0, err)
		return err
	}
	err := store.Put(ctx, name, buf.Bytes())
	if err != nil {
		err = fmt.Errorf("psmap: save %q: %w", name, err)
	}
	o.logger.LogSave(ctx, name, m.Len(), buf.Len(), err)
	return err
}

// Load reads the snapshot stored under name. A missing snapshot yields an
// error matching blobstore.ErrNotFound.
func Load[T any](ctx context.Context, store blobstore.Store, name string, opts ...SnapshotOption) (*Map[T], error) {
	o := applySnapshotOptions(opts)

	data, err := store.Get(ctx, name)
	if err != nil {
		err = fmt.Errorf("psmap: load %q: %w", name, err)
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}

	m, err := Decode[T](bytes.NewReader(data), opts...)
	if err != nil {
		err = fmt.Errorf("psmap: load %q: %w", name, err)
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	o.logger.LogLoad(ctx, name, m.Len(), nil)
	return m, nil
}

// SaveAll writes one snapshot per map. Maps are encoded one after another
// on the calling goroutine, so none of them may be mutated concurrently;
// uploads then run in parallel, bounded by WithUploadConcurrency. The first
// failure cancels the remaining uploads and is returned.
func SaveAll[T any](ctx context.Context, store blobstore.Store, maps map[string]*Map[T], opts ...SnapshotOption) error {
	o := applySnapshotOptions(opts)

	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	slices.Sort(names)

	blobs := make([][]byte, len(names))
	for i, name := range names {
		var buf bytes.Buffer
		if _, err := maps[name].Encode(&buf, opts...); err != nil {
			return fmt.Errorf("psmap: save %q: %w", name, err)
		}
		blobs[i] = buf.Bytes()
	}

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.uploadConcurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := store.Put(gctx, name, blobs[i]); err != nil {
				failed.Add(1)
				return fmt.Errorf("psmap: save %q: %w", name, err)
			}
			return nil
		})
	}
	err := g.Wait()
	o.logger.LogSaveAll(ctx, len(names), int(failed.Load()))
	return err
}
