package photo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/photorelay/service/internal/storage"
	"github.com/photorelay/service/internal/upload"
)

// Catalog lists recorded photos for a user.
type Catalog interface {
	ListByUser(ctx context.Context, userID string) ([]Photo, error)
}

// Service lists stored uploads.
type Service struct {
	catalog   Catalog
	store     storage.Storage
	namespace string
}

// NewService creates a Service. A nil catalog makes listing read the bucket directly.
func NewService(catalog Catalog, store storage.Storage, namespace string) *Service {
	return &Service{catalog: catalog, store: store, namespace: strings.Trim(namespace, "/")}
}

// List returns userID's photos, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Photo, error) {
	if userID == "" {
		userID = upload.DefaultUserID
	}
	if s.catalog != nil {
		return s.catalog.ListByUser(ctx, userID)
	}
	return s.listBucket(ctx, userID)
}

func (s *Service) listBucket(ctx context.Context, userID string) ([]Photo, error) {
	objs, err := s.store.List(ctx, s.namespace+"/"+userID+"/")
	if err != nil {
		return nil, fmt.Errorf("list bucket: %w", err)
	}

	photos := make([]Photo, 0, len(objs))
	for _, obj := range objs {
		photos = append(photos, s.fromObject(userID, obj))
	}
	sort.SliceStable(photos, func(i, j int) bool {
		if !photos[i].UploadDate.Equal(photos[j].UploadDate) {
			return photos[i].UploadDate.After(photos[j].UploadDate)
		}
		return photos[i].ID > photos[j].ID
	})
	return photos, nil
}

// fromObject rebuilds a Photo from the metadata written at upload time.
func (s *Service) fromObject(userID string, obj storage.ObjectInfo) Photo {
	p := Photo{
		ID:           obj.Key,
		StorageKey:   obj.Key,
		URL:          s.store.PublicURL(obj.Key),
		Size:         obj.Size,
		Type:         obj.ContentType,
		UploadDate:   obj.LastModified.UTC(),
		UserID:       userID,
		Bucket:       s.store.Bucket(),
		OriginalName: obj.Key[strings.LastIndexByte(obj.Key, '/')+1:],
	}

	meta := obj.Metadata
	if v := meta[upload.MetaUserID]; v != "" {
		p.UserID = v
	}
	if v, err := url.PathUnescape(meta[upload.MetaOriginalName]); err == nil && v != "" {
		p.OriginalName = v
	}
	if v, err := time.Parse(time.RFC3339, meta[upload.MetaUploadDate]); err == nil {
		p.UploadDate = v.UTC()
	}
	if p.Size == 0 {
		if v, err := strconv.ParseInt(meta[upload.MetaFileSize], 10, 64); err == nil {
			p.Size = v
		}
	}
	return p
}
