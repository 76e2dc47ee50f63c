package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	defaultAppEnv          = "development"
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultSessionTTL      = 12 * time.Hour
	defaultStorageDriver   = "local"
	defaultUploadDir       = "./uploads"
	defaultUploadURLPrefix = "/uploads"
	defaultS3Region        = "us-east-1"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv        string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	SessionTTL    time.Duration
	DBPath        string
	Port          string
	LogLevel      string

	Storage StorageConfig
}

// StorageConfig selects and configures the blob store.
type StorageConfig struct {
	Driver          string // "local" or "s3"
	UploadDir       string
	UploadURLPrefix string

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
	AccessKeyID     string
	SecretAccessKey string
}

// IsDev reports whether the app runs in development mode.
func (c Config) IsDev() bool {
	return c.AppEnv == defaultAppEnv || c.AppEnv == "dev"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real environment variables.
	if err := loadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := Config{
		AppEnv:        getenvDefault("APP_ENV", defaultAppEnv),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    defaultSessionTTL,
		DBPath:        getenvDefault("DB_PATH", defaultDBPath),
		Port:          getenvDefault("PORT", defaultPort),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Storage: StorageConfig{
			Driver:          getenvDefault("STORAGE_DRIVER", defaultStorageDriver),
			UploadDir:       getenvDefault("UPLOAD_DIR", defaultUploadDir),
			UploadURLPrefix: getenvDefault("UPLOAD_URL_PREFIX", defaultUploadURLPrefix),
			S3Bucket:        os.Getenv("S3_BUCKET"),
			S3Region:        getenvDefault("S3_REGION", defaultS3Region),
			S3Endpoint:      os.Getenv("S3_ENDPOINT"),
			S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			slog.Warn("invalid SESSION_TTL, using default", "value", raw, "default", defaultSessionTTL)
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if cfg.AdminEmail == "" {
		slog.Warn("ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set")
	}
	if cfg.Storage.Driver == "s3" && cfg.Storage.S3Bucket == "" {
		slog.Warn("STORAGE_DRIVER is s3 but S3_BUCKET is not set")
	}

	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
