package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto the config. A .env file in
// the working directory is loaded first; real environment variables win
// over it.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString := func(dst *string, name string) {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	setString(&config.EndpointAddr, "PHOTOVAULT_ADDR")
	setString(&config.DatabaseDSN, "PHOTOVAULT_DATABASE_DSN")
	setString(&config.SecretKey, "PHOTOVAULT_SECRET_KEY")
	setString(&config.StorageBackend, "PHOTOVAULT_STORAGE_BACKEND")
	setString(&config.LocalStorageDir, "PHOTOVAULT_STORAGE_DIR")
	setString(&config.S3RootUser, "PHOTOVAULT_S3_ROOT_USER")
	setString(&config.S3RootPassword, "PHOTOVAULT_S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "PHOTOVAULT_S3_BUCKET")
	setString(&config.S3Region, "PHOTOVAULT_S3_REGION")
	setString(&config.S3BaseEndpoint, "PHOTOVAULT_S3_BASE_ENDPOINT")

	if v, ok := os.LookupEnv("PHOTOVAULT_SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionTTL = d
		}
	}
	if v, ok := os.LookupEnv("PHOTOVAULT_CORS_ORIGINS"); ok {
		config.CORSOrigins = splitOrigins(v)
	}
}
