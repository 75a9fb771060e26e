package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first, best-effort, so local development does
// not need exported variables.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	setIfNotEmpty(&cfg.Addr, os.Getenv("ADDR"))
	setIfNotEmpty(&cfg.DatabaseDSN, os.Getenv("DATABASE_DSN"))
	setIfNotEmpty(&cfg.RedisAddr, os.Getenv("REDIS_ADDR"))
	setIfNotEmpty(&cfg.SecretKey, os.Getenv("SECRET_KEY"))
	if v := os.Getenv("TOKEN_VALIDITY_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidityDuration = d
		}
	}
	setIfNotEmpty(&cfg.S3RootUser, os.Getenv("S3_ROOT_USER"))
	setIfNotEmpty(&cfg.S3RootPassword, os.Getenv("S3_ROOT_PASSWORD"))
	setIfNotEmpty(&cfg.S3Bucket, os.Getenv("S3_BUCKET"))
	setIfNotEmpty(&cfg.S3Region, os.Getenv("S3_REGION"))
	setIfNotEmpty(&cfg.S3BaseEndpoint, os.Getenv("S3_BASE_ENDPOINT"))
	setIfNotEmpty(&cfg.PublicBaseURL, os.Getenv("PUBLIC_BASE_URL"))
	setIfNotEmpty(&cfg.AllowedOrigins, os.Getenv("ALLOWED_ORIGINS"))
}
