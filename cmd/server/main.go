package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Simplici0/calhas/internal/auth"
	"github.com/Simplici0/calhas/internal/config"
	"github.com/Simplici0/calhas/internal/db"
	"github.com/Simplici0/calhas/internal/logging"
	"github.com/Simplici0/calhas/internal/migrations"
	"github.com/Simplici0/calhas/internal/quote"
	"github.com/Simplici0/calhas/internal/seed"
	"github.com/Simplici0/calhas/internal/storage"
	"github.com/Simplici0/calhas/internal/store"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logging.Fatal("failed to open database", "error", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		logging.Fatal("failed to run database migrations", "error", err)
	}

	ctx := context.Background()
	stats, err := seed.Run(ctx, database, seed.Config{AdminEmail: cfg.AdminEmail, AdminPassword: cfg.AdminPassword})
	if err != nil {
		logging.Fatal("failed to seed database", "error", err)
	}
	slog.Info("seed complete", "inserts", stats.Inserts)

	blobs, err := newBlobStorage(ctx, cfg.Storage)
	if err != nil {
		logging.Fatal("failed to configure storage", "error", err)
	}

	records := store.New(database)
	srv := &server{
		store:         records,
		quotes:        quote.NewService(records),
		auth:          auth.NewService(records, cfg.SessionSecret, cfg.SessionTTL),
		blobs:         blobs,
		secureCookies: !cfg.IsDev(),
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.routes(cfg.Storage),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", httpServer.Addr, "env", cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server stopped", "error", err)
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

func newBlobStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Driver == "s3" {
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PublicBaseURL:   cfg.S3PublicBaseURL,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
	}
	return storage.NewLocalStorage(cfg.UploadDir, cfg.UploadURLPrefix), nil
}
