package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "STORAGE_PROVIDER", "KEY_NAMESPACE", "DATABASE_URL", "MAX_UPLOAD_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ProviderS3, cfg.StorageProvider)
	assert.Equal(t, "photo-uploader", cfg.KeyNamespace)
	assert.False(t, cfg.CatalogEnabled())
	assert.Zero(t, cfg.MaxUploadBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_PROVIDER", "MinIO")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/photos")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ProviderMinio, cfg.StorageProvider)
	assert.True(t, cfg.StorageUseSSL)
	assert.EqualValues(t, 1048576, cfg.MaxUploadBytes)
	assert.True(t, cfg.CatalogEnabled())
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidIntegerFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "lots")

	assert.Zero(t, Load().MaxUploadBytes)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "s3 complete",
			cfg: Config{
				StorageProvider:  ProviderS3,
				AWSRegion:        "eu-central-1",
				S3Bucket:         "photos",
				CloudFrontDomain: "d123.cloudfront.net",
				KeyNamespace:     "photo-uploader",
			},
		},
		{
			name:    "s3 missing bucket and domain",
			cfg:     Config{StorageProvider: ProviderS3, AWSRegion: "eu-central-1", KeyNamespace: "ns"},
			wantErr: "S3_BUCKET_NAME, CLOUDFRONT_DOMAIN",
		},
		{
			name:    "minio missing public base",
			cfg:     Config{StorageProvider: ProviderMinio, StorageEndpoint: "localhost:9000", StorageBucket: "b", KeyNamespace: "ns"},
			wantErr: "STORAGE_PUBLIC_BASE",
		},
		{
			name: "memory needs nothing but a namespace",
			cfg:  Config{StorageProvider: ProviderMemory, KeyNamespace: "ns"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{StorageProvider: "ftp", KeyNamespace: "ns"},
			wantErr: "unknown STORAGE_PROVIDER",
		},
		{
			name:    "negative cap",
			cfg:     Config{StorageProvider: ProviderMemory, KeyNamespace: "ns", MaxUploadBytes: -1},
			wantErr: "MAX_UPLOAD_BYTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
