// Package s3 provides a BlobStore backed by Amazon S3.
//
// Writes go through the S3 transfer manager, so large snapshot batches are
// uploaded in parts automatically. Reads use ranged GetObject requests.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "lloyd/")
package s3
