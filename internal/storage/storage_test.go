package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// MemoryStorage
// ============================================================================

func TestMemoryStorage_UploadAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStorage("photos", "http://cdn.local/")

	require.NoError(t, store.Upload(ctx, Object{
		Key:          "ns/alice/2.png",
		Body:         bytes.NewReader([]byte("png")),
		Size:         3,
		ContentType:  "image/png",
		CacheControl: "max-age=31536000",
		Metadata:     map[string]string{"User-Id": "alice"},
	}))
	require.NoError(t, store.Upload(ctx, Object{Key: "ns/alice/1.mp4", Body: bytes.NewReader([]byte("mp4!")), Size: 4, ContentType: "video/mp4"}))
	require.NoError(t, store.Upload(ctx, Object{Key: "ns/bob/1.png", Body: bytes.NewReader(nil)}))

	objs, err := store.List(ctx, "ns/alice/")
	require.NoError(t, err)
	require.Len(t, objs, 2)

	assert.Equal(t, "ns/alice/1.mp4", objs[0].Key)
	assert.EqualValues(t, 4, objs[0].Size)
	assert.Equal(t, "ns/alice/2.png", objs[1].Key)
	assert.Equal(t, "image/png", objs[1].ContentType)
	assert.Equal(t, "alice", objs[1].Metadata["user-id"])
	assert.False(t, objs[1].LastModified.IsZero())

	data, cacheControl, ok := store.Get("ns/alice/2.png")
	require.True(t, ok)
	assert.Equal(t, []byte("png"), data)
	assert.Equal(t, "max-age=31536000", cacheControl)

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, "photos", store.Bucket())
	assert.Equal(t, "http://cdn.local/ns/alice/2.png", store.PublicURL("ns/alice/2.png"))
}

func TestMemoryStorage_ConcurrentUploads(t *testing.T) {
	t.Parallel()

	store := NewMemoryStorage("photos", "http://cdn.local")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "ns/u/" + string(rune('a'+i%26)) + string(rune('a'+i/26))
			assert.NoError(t, store.Upload(context.Background(), Object{Key: key, Body: bytes.NewReader([]byte{byte(i)})}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len())
}

func TestMemoryStorage_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStorage("photos", "")
	err := store.Upload(ctx, Object{Key: "k", Body: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.Len())
}

// ============================================================================
// Helpers
// ============================================================================

func TestNormalizeMetadata(t *testing.T) {
	t.Parallel()

	got := normalizeMetadata(map[string]string{
		"X-Amz-Meta-User-Id": "alice",
		"Original-Name":      "cat.png",
		"file-size":          "1024",
	})

	assert.Equal(t, map[string]string{
		"user-id":       "alice",
		"original-name": "cat.png",
		"file-size":     "1024",
	}, got)
}

func TestPublicReadPolicy(t *testing.T) {
	t.Parallel()

	var policy struct {
		Statement []struct {
			Action   string
			Resource string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(publicReadPolicy("photos")), &policy))
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, "s3:GetObject", policy.Statement[0].Action)
	assert.Equal(t, "arn:aws:s3:::photos/*", policy.Statement[0].Resource)
}

func TestMinioStorage_PublicURL(t *testing.T) {
	t.Parallel()

	s := &MinioStorage{bucket: "photos", publicBase: "http://localhost:9000/photos/"}
	assert.Equal(t, "http://localhost:9000/photos/ns/alice/1.png", s.PublicURL("ns/alice/1.png"))
	assert.Equal(t, "photos", s.Bucket())
}

func TestS3Storage_PublicURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain string
		want   string
	}{
		{"d111111abcdef8.cloudfront.net", "https://d111111abcdef8.cloudfront.net/photo-uploader/alice/1.png"},
		{"https://cdn.example.com/", "https://cdn.example.com/photo-uploader/alice/1.png"},
	}
	for _, tt := range tests {
		s := &S3Storage{deliveryDomain: tt.domain}
		assert.Equal(t, tt.want, s.PublicURL("photo-uploader/alice/1.png"))
	}
}

// ============================================================================
// S3Storage against a fake endpoint
// ============================================================================

func TestS3Storage_UploadSendsMetadata(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		method   string
		path     string
		captured http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		method, path, captured = r.Method, r.URL.Path, r.Header.Clone()
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Storage(context.Background(), S3Options{
		Region:         "us-east-1",
		AccessKey:      "AKIAEXAMPLE",
		SecretKey:      "secret",
		Bucket:         "photos",
		Endpoint:       srv.URL,
		DeliveryDomain: "cdn.example.com",
	})
	require.NoError(t, err)

	payload := []byte("fake image bytes")
	err = store.Upload(context.Background(), Object{
		Key:          "photo-uploader/alice/1.png",
		Body:         bytes.NewReader(payload),
		Size:         int64(len(payload)),
		ContentType:  "image/png",
		CacheControl: "max-age=31536000",
		Metadata:     map[string]string{"user-id": "alice", "original-name": "cat.png"},
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/photos/photo-uploader/alice/1.png", path)
	assert.Equal(t, "image/png", captured.Get("Content-Type"))
	assert.Equal(t, "max-age=31536000", captured.Get("Cache-Control"))
	assert.Equal(t, "alice", captured.Get("X-Amz-Meta-User-Id"))
	assert.Equal(t, "cat.png", captured.Get("X-Amz-Meta-Original-Name"))
}

func TestNewS3Storage_RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := NewS3Storage(context.Background(), S3Options{Region: "us-east-1"})
	assert.Error(t, err)
}
