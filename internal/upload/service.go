package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/photorelay/service/internal/metrics"
	"github.com/photorelay/service/internal/storage"
)

// ErrStorageWriteFailed wraps any error returned by the storage backend.
var ErrStorageWriteFailed = errors.New("storage write failed")

const (
	// DefaultExtension is used when the original filename has no suffix.
	DefaultExtension = "jpg"
	// CacheControl is attached to every stored object.
	CacheControl = "max-age=31536000"
)

// Object metadata keys.
const (
	MetaUserID       = "user-id"
	MetaUploadDate   = "upload-date"
	MetaOriginalName = "original-name"
	MetaFileSize     = "file-size"
)

// StoredObject describes a file written to the bucket.
type StoredObject struct {
	Key          string
	UserID       string
	ContentType  string
	Size         int64
	OriginalName string
	CreatedAt    time.Time
	URL          string
	Bucket       string
}

// Recorder mirrors stored objects into a catalog.
type Recorder interface {
	Record(ctx context.Context, obj *StoredObject) error
}

// Service writes validated uploads to object storage.
type Service struct {
	store     storage.Storage
	recorder  Recorder
	namespace string
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every stored object in r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates a Service that stores objects under namespace.
func NewService(store storage.Storage, namespace string, opts ...Option) *Service {
	s := &Service{
		store:     store,
		namespace: strings.Trim(namespace, "/"),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store writes v to the bucket in one put and returns the stored object's descriptor.
// The object is not retried on failure and its existence is not re-checked.
func (s *Service) Store(ctx context.Context, v *Validated) (*StoredObject, error) {
	log := zerolog.Ctx(ctx)

	createdAt := s.now().UTC()
	key := s.Key(v.UserID, v.Filename, createdAt)
	size := int64(len(v.Data))

	obj := storage.Object{
		Key:          key,
		Body:         bytes.NewReader(v.Data),
		Size:         size,
		ContentType:  v.ContentType,
		CacheControl: CacheControl,
		Metadata: map[string]string{
			MetaUserID:       v.UserID,
			MetaUploadDate:   createdAt.Format(time.RFC3339Nano),
			MetaOriginalName: url.PathEscape(v.Filename),
			MetaFileSize:     strconv.FormatInt(size, 10),
		},
	}

	log.Debug().Str("key", key).Str("size", humanize.Bytes(uint64(size))).Msg("uploading to object storage")

	start := time.Now()
	err := s.store.Upload(ctx, obj)
	metrics.ObserveStorageWrite(s.store.Bucket(), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageWriteFailed, err)
	}
	metrics.ObserveStored(size)

	stored := &StoredObject{
		Key:          key,
		UserID:       v.UserID,
		ContentType:  v.ContentType,
		Size:         size,
		OriginalName: v.Filename,
		CreatedAt:    createdAt,
		URL:          s.store.PublicURL(key),
		Bucket:       s.store.Bucket(),
	}

	log.Info().
		Str("key", key).
		Str("user_id", v.UserID).
		Str("size", humanize.Bytes(uint64(size))).
		Dur("took", time.Since(start)).
		Msg("object stored")

	if s.recorder != nil {
		// The bucket is the source of truth; a catalog miss only affects listing.
		if err := s.recorder.Record(ctx, stored); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to record object in catalog")
		}
	}

	return stored, nil
}

// Key builds {namespace}/{userID}/{unixMillis}-{uuid}.{ext}.
func (s *Service) Key(userID, filename string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%d-%s.%s", s.namespace, userID, at.UnixMilli(), s.newID(), Extension(filename))
}

// Extension returns the suffix after the last dot of filename, or DefaultExtension.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return DefaultExtension
	}
	ext := filename[i+1:]
	if strings.ContainsAny(ext, `/\`) {
		return DefaultExtension
	}
	return ext
}
