package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedStore throttles the bytes moved through an inner Store.
type RateLimitedStore struct {
	inner   Store
	limiter *rate.Limiter
}

// RateLimited wraps inner so that Put and Get wait on limiter for every
// byte transferred. A nil limiter disables throttling.
//
// Example limiting snapshot uploads to 8 MiB/s:
//
//	limiter := rate.NewLimiter(rate.Limit(8<<20), 8<<20)
//	store := blobstore.RateLimited(s3Store, limiter)
func RateLimited(inner Store, limiter *rate.Limiter) *RateLimitedStore {
	return &RateLimitedStore{inner: inner, limiter: limiter}
}

// wait reserves n bytes in burst-sized chunks, since WaitN rejects requests
// larger than the burst.
func (s *RateLimitedStore) wait(ctx context.Context, n int) error {
	if s.limiter == nil || s.limiter.Limit() == rate.Inf {
		return nil
	}
	burst := s.limiter.Burst()
	if burst <= 0 {
		return nil
	}
	for n > 0 {
		chunk := min(n, burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Put implements Store.
func (s *RateLimitedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Get implements Store. The wait happens after the read, since the blob
// size is not known in advance.
func (s *RateLimitedStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.wait(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

// Delete implements Store.
func (s *RateLimitedStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List implements Store.
func (s *RateLimitedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}
