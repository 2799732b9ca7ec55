// Package blobstore provides the storage abstraction for input datasets,
// iteration snapshots and run summaries.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local file system
//   - MemoryStore: in-process map, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3
//
// # Usage
//
//	store := blobstore.NewLocalStore("./out")
//	_ = store.Put(ctx, "points_00.svg", svg)
//	data, _ := blobstore.Get(ctx, store, "points_00.svg")
package blobstore
