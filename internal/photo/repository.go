// Package photo lists a user's stored uploads, from the Postgres catalog
// when one is configured and from the bucket otherwise.
package photo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photorelay/service/internal/upload"
)

// Photo is one stored upload as returned by the read endpoint.
type Photo struct {
	ID           string    `json:"id"           example:"photo-uploader/alice/1760000000000-0b7c7e4e-2f9c-4a8e-9a57-3f1f7f0c6b11.png"`
	URL          string    `json:"url"          example:"https://d111111abcdef8.cloudfront.net/photo-uploader/alice/1760000000000-0b7c7e4e-2f9c-4a8e-9a57-3f1f7f0c6b11.png"`
	OriginalName string    `json:"originalName" example:"cat.png"`
	Size         int64     `json:"size"         example:"1024"`
	Type         string    `json:"type"         example:"image/png"`
	UploadDate   time.Time `json:"uploadDate"   example:"2026-10-19T09:30:00Z"`
	UserID       string    `json:"userId"       example:"alice"`
	StorageKey   string    `json:"storageKey"   example:"photo-uploader/alice/1760000000000-0b7c7e4e-2f9c-4a8e-9a57-3f1f7f0c6b11.png"`
	Bucket       string    `json:"bucket"       example:"photo-uploader-media"`
}

// Repository handles catalog persistence of stored uploads.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record inserts a catalog row for obj. Recording the same key twice is a no-op.
func (r *Repository) Record(ctx context.Context, obj *upload.StoredObject) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO photos (storage_key, user_id, url, original_name, content_type, size_bytes, bucket, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (storage_key) DO NOTHING`,
		obj.Key, obj.UserID, obj.URL, obj.OriginalName, obj.ContentType, obj.Size, obj.Bucket, obj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record photo: %w", err)
	}
	return nil
}

// ListByUser returns the user's photos, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Photo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT storage_key, url, original_name, size_bytes, content_type, uploaded_at, user_id, bucket
		 FROM photos
		 WHERE user_id = $1
		 ORDER BY uploaded_at DESC, storage_key DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var out []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.URL, &p.OriginalName, &p.Size, &p.Type, &p.UploadDate, &p.UserID, &p.Bucket); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		p.StorageKey = p.ID
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return out, nil
}
