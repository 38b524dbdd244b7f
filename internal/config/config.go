package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	// Object storage (Google Cloud Storage)
	StorageBucket      string
	StorageBaseURL     string // override for the public URL prefix, optional
	GCSCredentialsJSON string
}

func Load() *Config {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:        getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=warehouse port=5432 sslmode=disable"),
		CORSOrigins:        getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		StorageBucket:      getEnv("STORAGE_BUCKET", ""),
		StorageBaseURL:     getEnv("STORAGE_BASE_URL", ""),
		GCSCredentialsJSON: getEnv("GCS_CREDENTIALS_JSON", ""),
	}

	if cfg.StorageBucket == "" {
		log.Println("[WARN] STORAGE_BUCKET is not set, image and QR code uploads will fail.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=warehouse port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
