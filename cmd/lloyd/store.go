package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/lloyd/blobstore"
	minioblob "github.com/hupe1980/lloyd/blobstore/minio"
	s3blob "github.com/hupe1980/lloyd/blobstore/s3"
)

// openStore creates the output store described by out.
func openStore(ctx context.Context, out Output) (blobstore.BlobStore, error) {
	switch out.Kind {
	case "", "local":
		return blobstore.NewLocalStore(out.Dir), nil

	case "memory":
		return blobstore.NewMemoryStore(), nil

	case "minio":
		client, err := minio.New(out.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(out.AccessKey, out.SecretKey, ""),
			Secure: out.Secure,
			Region: out.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		store := minioblob.NewStore(client, out.Bucket, out.Dir)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket %s: %w", out.Bucket, err)
		}
		return store, nil

	case "s3":
		var opts []func(*awsconfig.LoadOptions) error
		if out.Region != "" {
			opts = append(opts, awsconfig.WithRegion(out.Region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
			if out.Endpoint != "" {
				o.BaseEndpoint = aws.String(out.Endpoint)
				o.UsePathStyle = true
			}
		})
		return s3blob.NewStore(client, out.Bucket, out.Dir), nil

	default:
		return nil, fmt.Errorf("unknown output kind %q", out.Kind)
	}
}
