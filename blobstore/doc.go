// Package blobstore provides the storage abstraction for map snapshots.
//
// Store is the interface for writing and reading whole snapshot blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with atomic replace
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible services
//
// RateLimited wraps any Store with a byte-rate limit.
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Put(ctx, name, data) error         // Atomic write
//	    Get(ctx, name) ([]byte, error)     // Whole-blob read
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
