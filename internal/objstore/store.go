// Package objstore abstracts the object-storage operations the catalog
// builder and the API server need: delimiter listings, existence probes and
// bucket-to-bucket copies. The S3 implementation lives in s3.go; tests use
// in-memory fakes.
package objstore

import "context"

// Store is the object-storage capability injected into the catalog builder
// and the file handlers.
type Store interface {
	// ListPrefixes performs a delimiter listing and returns the immediate
	// child path segments under prefix, without the prefix itself or the
	// trailing delimiter. It is a one-level-at-a-time contract: deep keys
	// are never returned.
	ListPrefixes(ctx context.Context, bucket, prefix string) ([]string, error)

	// ListFiles returns the base file names of the objects directly under
	// prefix.
	ListFiles(ctx context.Context, bucket, prefix string) ([]string, error)

	// Exists reports whether the object key is present in bucket.
	Exists(ctx context.Context, bucket, key string) (bool, error)

	// Copy copies one object between buckets.
	Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
}
