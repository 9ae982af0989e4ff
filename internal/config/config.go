// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Storage providers accepted in STORAGE_PROVIDER.
const (
	ProviderS3     = "s3"
	ProviderMinio  = "minio"
	ProviderMemory = "memory"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// StorageProvider selects the object storage backend: s3, minio or memory.
	StorageProvider string

	// AWS S3 + CloudFront
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
	S3Endpoint         string // optional, for S3-compatible providers
	CloudFrontDomain   string

	// Object storage (S3-compatible via MinIO client)
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/photos"

	// KeyNamespace is the first segment of every storage key.
	KeyNamespace string

	// DatabaseURL enables the photo catalog when set.
	DatabaseURL string

	// MaxUploadBytes caps the request body; 0 disables the cap.
	MaxUploadBytes int64
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageProvider: strings.ToLower(getEnv("STORAGE_PROVIDER", ProviderS3)),

		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          getEnv("AWS_REGION", ""),
		S3Bucket:           getEnv("S3_BUCKET_NAME", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		CloudFrontDomain:   getEnv("CLOUDFRONT_DOMAIN", ""),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "photos"),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/photos"),

		KeyNamespace: getEnv("KEY_NAMESPACE", "photo-uploader"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 0),
	}
}

// Validate reports missing settings for the selected storage provider.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if value == "" {
			missing = append(missing, key)
		}
	}

	switch c.StorageProvider {
	case ProviderS3:
		require("AWS_REGION", c.AWSRegion)
		require("S3_BUCKET_NAME", c.S3Bucket)
		require("CLOUDFRONT_DOMAIN", c.CloudFrontDomain)
	case ProviderMinio:
		require("STORAGE_ENDPOINT", c.StorageEndpoint)
		require("STORAGE_BUCKET", c.StorageBucket)
		require("STORAGE_PUBLIC_BASE", c.StoragePublicBase)
	case ProviderMemory:
	default:
		return fmt.Errorf("unknown STORAGE_PROVIDER %q", c.StorageProvider)
	}

	require("KEY_NAMESPACE", c.KeyNamespace)
	if c.MaxUploadBytes < 0 {
		return errors.New("MAX_UPLOAD_BYTES must not be negative")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CatalogEnabled reports whether uploads are mirrored into Postgres.
func (c *Config) CatalogEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer, using default")
		return fallback
	}
	return n
}
