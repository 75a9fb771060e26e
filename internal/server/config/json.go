package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/campusmarket/internal/flagx"
	"github.com/dmitrijs2005/campusmarket/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. timex.Duration
// lets durations be spelled as "24h" or integer nanoseconds.
type JsonConfig struct {
	Addr                  string         `json:"addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	RedisAddr             string         `json:"redis_addr"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	PublicBaseURL         string         `json:"public_base_url"`
	AllowedOrigins        string         `json:"allowed_origins"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Empty JSON fields leave the current value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.Addr, jc.Addr)
	setIfNotEmpty(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIfNotEmpty(&cfg.RedisAddr, jc.RedisAddr)
	setIfNotEmpty(&cfg.SecretKey, jc.SecretKey)
	if jc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = time.Duration(jc.TokenValidityDuration.Duration)
	}
	setIfNotEmpty(&cfg.S3RootUser, jc.S3RootUser)
	setIfNotEmpty(&cfg.S3RootPassword, jc.S3RootPassword)
	setIfNotEmpty(&cfg.S3Bucket, jc.S3Bucket)
	setIfNotEmpty(&cfg.S3Region, jc.S3Region)
	setIfNotEmpty(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setIfNotEmpty(&cfg.PublicBaseURL, jc.PublicBaseURL)
	setIfNotEmpty(&cfg.AllowedOrigins, jc.AllowedOrigins)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
