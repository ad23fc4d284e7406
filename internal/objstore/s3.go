package objstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Options configures the S3 store. Empty AccessKey selects anonymous
// credentials, which is what the public NOAA buckets require.
type Options struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

type S3Store struct {
	client *s3.Client
}

func NewS3Store(ctx context.Context, opts Options) (*S3Store, error) {

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}

	if opts.AccessKey == "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	} else {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
	})

	return &S3Store{client: client}, nil
}

func (s *S3Store) ListPrefixes(ctx context.Context, bucket, prefix string) ([]string, error) {

	var segments []string

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing prefixes under %q: %w", prefix, err)
		}
		for _, cp := range page.CommonPrefixes {
			full := aws.ToString(cp.Prefix)
			segment := strings.TrimSuffix(strings.TrimPrefix(full, prefix), "/")
			if segment != "" {
				segments = append(segments, segment)
			}
		}
	}

	return segments, nil
}

func (s *S3Store) ListFiles(ctx context.Context, bucket, prefix string) ([]string, error) {

	var files []string

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})

	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing files under %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			parts := strings.Split(key, "/")
			name := parts[len(parts)-1]
			if name != "" {
				files = append(files, name)
			}
		}
	}

	return files, nil
}

func (s *S3Store) Exists(ctx context.Context, bucket, key string) (bool, error) {

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, fmt.Errorf("probing %s/%s: %w", bucket, key, err)
	}

	return true, nil
}

func (s *S3Store) Copy(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {

	source := url.PathEscape(srcBucket + "/" + srcKey)

	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(source),
	})
	if err != nil {
		return fmt.Errorf("copying %s/%s to %s/%s: %w", srcBucket, srcKey, dstBucket, dstKey, err)
	}

	return nil
}

// PublicURL builds the virtual-hosted public URL of an object, the form the
// original archive exposes for anonymous download.
func PublicURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
}
