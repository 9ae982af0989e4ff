//	@title			Photo Relay API
//	@version		1.0
//	@description	Accepts photo and video uploads and relays them to object storage.
//
//	@host		localhost:8080
//	@BasePath	/api

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/photorelay/service/internal/config"
	"github.com/photorelay/service/internal/db"
	"github.com/photorelay/service/internal/logger"
	"github.com/photorelay/service/internal/photo"
	"github.com/photorelay/service/internal/server"
	"github.com/photorelay/service/internal/storage"
	"github.com/photorelay/service/internal/upload"
)

func main() {
	cfg := config.Load()
	l := logger.Setup(cfg.LogLevel, cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		l.Fatal().Err(err).Str("provider", cfg.StorageProvider).Msg("object storage init failed")
	}

	// Wire dependencies: storage → service → handler
	var (
		uploadOpts []upload.Option
		catalog    photo.Catalog
	)
	if cfg.CatalogEnabled() {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			l.Fatal().Err(err).Msg("database connection failed")
		}
		defer pool.Close()

		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			l.Fatal().Err(err).Msg("database migration failed")
		}

		repo := photo.NewRepository(pool)
		uploadOpts = append(uploadOpts, upload.WithRecorder(repo))
		catalog = repo
	}

	uploadSvc := upload.NewService(store, cfg.KeyNamespace, uploadOpts...)
	photoSvc := photo.NewService(catalog, store, cfg.KeyNamespace)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewRouter(server.Deps{
			Logger:  l,
			Uploads: upload.NewHandler(uploadSvc, cfg.MaxUploadBytes),
			Photos:  photo.NewHandler(photoSvc),
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		l.Info().
			Str("port", cfg.Port).
			Str("env", cfg.AppEnv).
			Str("provider", cfg.StorageProvider).
			Str("bucket", store.Bucket()).
			Bool("catalog", cfg.CatalogEnabled()).
			Msg("server listening")
		l.Info().Msgf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	l.Info().Msg("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}

	l.Info().Msg("server stopped")
}

// newStorage builds the backend named by cfg.StorageProvider.
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageProvider {
	case config.ProviderS3:
		return storage.NewS3Storage(ctx, storage.S3Options{
			Region:         cfg.AWSRegion,
			AccessKey:      cfg.AWSAccessKeyID,
			SecretKey:      cfg.AWSSecretAccessKey,
			Bucket:         cfg.S3Bucket,
			Endpoint:       cfg.S3Endpoint,
			DeliveryDomain: cfg.CloudFrontDomain,
		})
	case config.ProviderMinio:
		return storage.NewMinioStorage(
			ctx,
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
		)
	case config.ProviderMemory:
		log.Warn().Msg("using in-memory storage; uploads are lost on restart")
		return storage.NewMemoryStorage(cfg.StorageBucket, cfg.StoragePublicBase), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}
