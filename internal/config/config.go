package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	AdminKey        string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	MaxUploadSizeMB int64         `mapstructure:"MAX_UPLOAD_MB"`

	RedisURL string `mapstructure:"REDIS_URL"`

	BlobDriver        string `mapstructure:"BLOB_DRIVER"`
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `mapstructure:"S3_PUBLIC_URL"`

	EstimateVariance     float64 `mapstructure:"ESTIMATE_VARIANCE"`
	DefaultSquareFootage float64 `mapstructure:"DEFAULT_SQUARE_FOOTAGE"`
	Timezone             string  `mapstructure:"TIMEZONE"`
	PhoneRegion          string  `mapstructure:"PHONE_REGION"`

	GeocoderURL       string        `mapstructure:"GEOCODER_URL"`
	GeocoderUserAgent string        `mapstructure:"GEOCODER_USER_AGENT"`
	GeocoderInterval  time.Duration `mapstructure:"GEOCODER_MIN_INTERVAL"`

	OverlayAuditSchedule  string `mapstructure:"OVERLAY_AUDIT_SCHEDULE"`
	PublicRateLimitPerMin int    `mapstructure:"PUBLIC_RATE_LIMIT_PER_MIN"`
	PublicRateBurst       int    `mapstructure:"PUBLIC_RATE_BURST"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_MB", 20)

	v.SetDefault("REDIS_URL", "")

	v.SetDefault("BLOB_DRIVER", "")
	v.SetDefault("S3_BUCKET", "quote-photos")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_PUBLIC_URL", "")

	v.SetDefault("ESTIMATE_VARIANCE", 0.1)
	v.SetDefault("DEFAULT_SQUARE_FOOTAGE", 1000)
	v.SetDefault("TIMEZONE", "America/Chicago")
	v.SetDefault("PHONE_REGION", "US")

	v.SetDefault("GEOCODER_URL", "")
	v.SetDefault("GEOCODER_USER_AGENT", "grndwrk-backend")
	v.SetDefault("GEOCODER_MIN_INTERVAL", "1s")

	v.SetDefault("OVERLAY_AUDIT_SCHEDULE", "@every 15m")
	v.SetDefault("PUBLIC_RATE_LIMIT_PER_MIN", 60)
	v.SetDefault("PUBLIC_RATE_BURST", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CORSOrigins splits the comma-separated origin list.
func (c Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Location resolves Timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UseS3 reports whether photo uploads go to an S3-compatible bucket rather
// than process memory. BLOB_DRIVER=s3 forces it when credentials come from
// the environment chain.
func (c Config) UseS3() bool {
	switch strings.ToLower(c.BlobDriver) {
	case "s3":
		return true
	case "memory":
		return false
	}
	return c.S3Endpoint != "" || c.S3AccessKeyID != ""
}
