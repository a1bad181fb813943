// Package minio implements blobstore.Store on MinIO and other
// S3-compatible object stores.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	store := psminio.NewStore(client, "my-bucket", "snapshots/")
package minio
