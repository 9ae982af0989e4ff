package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryObject struct {
	data         []byte
	contentType  string
	cacheControl string
	metadata     map[string]string
	modified     time.Time
}

// MemoryStorage keeps objects in process memory. Used for local runs and tests.
type MemoryStorage struct {
	mu         sync.RWMutex
	objects    map[string]memoryObject
	bucket     string
	publicBase string
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage(bucket, publicBase string) *MemoryStorage {
	return &MemoryStorage{
		objects:    make(map[string]memoryObject),
		bucket:     bucket,
		publicBase: publicBase,
	}
}

// Upload buffers obj.Body and stores it under obj.Key.
func (m *MemoryStorage) Upload(ctx context.Context, obj Object) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	meta := make(map[string]string, len(obj.Metadata))
	for k, v := range obj.Metadata {
		meta[k] = v
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[obj.Key] = memoryObject{
		data:         buf,
		contentType:  obj.ContentType,
		cacheControl: obj.CacheControl,
		metadata:     meta,
		modified:     time.Now().UTC(),
	}
	return nil
}

// List returns objects under prefix in key order.
func (m *MemoryStorage) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ObjectInfo
	for key, obj := range m.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			ContentType:  obj.contentType,
			LastModified: obj.modified,
			Metadata:     normalizeMetadata(obj.metadata),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Get returns a copy of the stored bytes and the object's cache-control value.
func (m *MemoryStorage) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, obj.cacheControl, true
}

// Len returns the number of stored objects.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// PublicURL joins the configured base and key.
func (m *MemoryStorage) PublicURL(key string) string {
	return joinURL(m.publicBase, key)
}

// Bucket returns the bucket name.
func (m *MemoryStorage) Bucket() string {
	return m.bucket
}
