package photo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photorelay/service/internal/storage"
	"github.com/photorelay/service/internal/upload"
)

type fakeCatalog struct {
	photos map[string][]Photo
	err    error
	asked  []string
}

func (c *fakeCatalog) ListByUser(ctx context.Context, userID string) ([]Photo, error) {
	c.asked = append(c.asked, userID)
	return c.photos[userID], c.err
}

type failingList struct {
	*storage.MemoryStorage
}

func (f failingList) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	return nil, errors.New("bucket unreachable")
}

func seed(t *testing.T, store storage.Storage, uploads ...upload.Validated) {
	t.Helper()

	svc := upload.NewService(store, "photo-uploader")
	for i := range uploads {
		_, err := svc.Store(context.Background(), &uploads[i])
		require.NoError(t, err)
		// Keys carry millisecond resolution.
		time.Sleep(5 * time.Millisecond)
	}
}

func TestService_ListFromBucket(t *testing.T) {
	store := storage.NewMemoryStorage("photos", "https://cdn.example.com")
	seed(t, store,
		upload.Validated{Data: []byte("one"), ContentType: "image/png", Filename: "first photo.png", UserID: "alice"},
		upload.Validated{Data: []byte("bob"), ContentType: "image/jpeg", Filename: "b.jpg", UserID: "bob"},
		upload.Validated{Data: []byte("three"), ContentType: "video/mp4", Filename: "clip.mp4", UserID: "alice"},
	)

	photos, err := NewService(nil, store, "photo-uploader").List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, photos, 2)

	newest, oldest := photos[0], photos[1]
	assert.Equal(t, "clip.mp4", newest.OriginalName)
	assert.Equal(t, "video/mp4", newest.Type)
	assert.EqualValues(t, 5, newest.Size)
	assert.Equal(t, "first photo.png", oldest.OriginalName)
	assert.True(t, newest.UploadDate.After(oldest.UploadDate))

	for _, p := range photos {
		assert.Equal(t, "alice", p.UserID)
		assert.Equal(t, p.ID, p.StorageKey)
		assert.Equal(t, "https://cdn.example.com/"+p.ID, p.URL)
		assert.Equal(t, "photos", p.Bucket)
	}
}

func TestService_ListDefaultsUser(t *testing.T) {
	catalog := &fakeCatalog{}
	_, err := NewService(catalog, storage.NewMemoryStorage("photos", ""), "photo-uploader").List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{upload.DefaultUserID}, catalog.asked)
}

func TestService_ListPrefersCatalog(t *testing.T) {
	want := []Photo{{ID: "photo-uploader/alice/1-x.png", UserID: "alice"}}
	catalog := &fakeCatalog{photos: map[string][]Photo{"alice": want}}

	got, err := NewService(catalog, failingList{storage.NewMemoryStorage("photos", "")}, "photo-uploader").List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_FromObjectWithoutMetadata(t *testing.T) {
	store := storage.NewMemoryStorage("photos", "http://local")
	svc := NewService(nil, store, "photo-uploader")
	modified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p := svc.fromObject("carol", storage.ObjectInfo{
		Key:          "photo-uploader/carol/1767323045000-abc.png",
		Size:         10,
		ContentType:  "image/png",
		LastModified: modified,
	})

	assert.Equal(t, "carol", p.UserID)
	assert.Equal(t, "1767323045000-abc.png", p.OriginalName)
	assert.Equal(t, modified, p.UploadDate)
	assert.EqualValues(t, 10, p.Size)
}

func TestHandler_List(t *testing.T) {
	catalog := &fakeCatalog{photos: map[string][]Photo{
		"alice": {
			{ID: "photo-uploader/alice/2-b.png", UserID: "alice"},
			{ID: "photo-uploader/alice/1-a.png", UserID: "alice"},
		},
	}}
	h := NewHandler(NewService(catalog, storage.NewMemoryStorage("photos", ""), "photo-uploader"))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/get-photos-s3?userId=alice", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool    `json:"success"`
		Count   int     `json:"count"`
		Data    []Photo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "photo-uploader/alice/2-b.png", body.Data[0].ID)
}

func TestHandler_ListFailure(t *testing.T) {
	h := NewHandler(NewService(&fakeCatalog{err: errors.New("db down")}, storage.NewMemoryStorage("photos", ""), "ns"))

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/get-photos-s3", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "db down")
}
