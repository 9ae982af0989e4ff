// Package storage defines the interface for object storage operations.
// Implementations: AWS S3 behind a CloudFront delivery domain, any
// S3-compatible provider through the MinIO client, and an in-memory store.
package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// Object is a single write to the store.
type Object struct {
	Key          string
	Body         io.Reader
	Size         int64
	ContentType  string
	CacheControl string
	// Metadata is attached to the stored object as user metadata.
	Metadata map[string]string
}

// ObjectInfo describes a stored object returned by List.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the interface for writing and enumerating objects.
type Storage interface {
	// Upload writes obj under obj.Key in a single put.
	Upload(ctx context.Context, obj Object) error
	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
	// Bucket names the bucket objects are written to.
	Bucket() string
}

const amzMetaPrefix = "x-amz-meta-"

// normalizeMetadata lower-cases metadata keys and strips the x-amz-meta- prefix
// so every backend reports the keys that were written.
func normalizeMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		k = strings.ToLower(k)
		k = strings.TrimPrefix(k, amzMetaPrefix)
		out[k] = v
	}
	return out
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
