package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3Storage.
type S3Options struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// Endpoint overrides the AWS endpoint for S3-compatible providers.
	Endpoint string
	// DeliveryDomain is the CDN host objects are served from.
	DeliveryDomain string
}

// S3Storage implements Storage on AWS S3, serving objects through a CDN domain.
type S3Storage struct {
	client         *s3.Client
	bucket         string
	deliveryDomain string
}

// NewS3Storage creates an S3 client from the given options. Credentials fall
// back to the default AWS chain when no static keys are configured.
func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket required for S3 storage")
	}

	loadOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	s3Opts := []func(*s3.Options){}
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Storage{
		client:         s3.NewFromConfig(awsCfg, s3Opts...),
		bucket:         opts.Bucket,
		deliveryDomain: opts.DeliveryDomain,
	}, nil
}

// Upload puts obj in a single request.
func (s *S3Storage) Upload(ctx context.Context, obj Object) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(obj.Key),
		Body:          obj.Body,
		ContentLength: aws.Int64(obj.Size),
		Metadata:      obj.Metadata,
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}
	if obj.CacheControl != "" {
		input.CacheControl = aws.String(obj.CacheControl)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object %q: %w", obj.Key, err)
	}
	return nil
}

// List pages through objects under prefix and heads each one for its metadata.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var out []ObjectInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects %q: %w", prefix, err)
		}
		for _, item := range page.Contents {
			key := aws.ToString(item.Key)
			head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return nil, fmt.Errorf("head object %q: %w", key, err)
			}
			out = append(out, ObjectInfo{
				Key:          key,
				Size:         aws.ToInt64(item.Size),
				ContentType:  aws.ToString(head.ContentType),
				LastModified: aws.ToTime(item.LastModified),
				Metadata:     normalizeMetadata(head.Metadata),
			})
		}
	}
	return out, nil
}

// PublicURL returns the CDN URL for key: https://{deliveryDomain}/{key}.
func (s *S3Storage) PublicURL(key string) string {
	domain := s.deliveryDomain
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return joinURL(domain, key)
}

// Bucket returns the bucket name.
func (s *S3Storage) Bucket() string {
	return s.bucket
}
