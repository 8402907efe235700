package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // TODOGRAPH_DATABASE_URL (required)
	HTTPAddr    string // TODOGRAPH_HTTP_ADDR (default ":8080")
	NATSURL     string // TODOGRAPH_NATS_URL (optional, empty = no events)
	AuthToken   string // TODOGRAPH_AUTH_TOKEN (optional, empty = auth disabled)

	// Sync settings
	SyncInterval   time.Duration // TODOGRAPH_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // TODOGRAPH_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // TODOGRAPH_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // TODOGRAPH_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // TODOGRAPH_SYNC_S3_KEY (default "todograph/backup.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("TODOGRAPH_DATABASE_URL"),
		HTTPAddr:       envOrDefault("TODOGRAPH_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("TODOGRAPH_NATS_URL"),
		AuthToken:      os.Getenv("TODOGRAPH_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("TODOGRAPH_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("TODOGRAPH_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("TODOGRAPH_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("TODOGRAPH_SYNC_S3_KEY", "todograph/backup.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("TODOGRAPH_DATABASE_URL is required")
	}

	intervalStr := envOrDefault("TODOGRAPH_SYNC_INTERVAL", "3m")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("TODOGRAPH_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
