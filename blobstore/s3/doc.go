// Package s3 implements blobstore.Store on Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket", "snapshots/")
//	err = psmap.Save(ctx, store, "followers.psm", m)
//
// Any client with the method set of *s3.Client can be used through
// NewStore, which keeps the store testable without network access.
package s3
