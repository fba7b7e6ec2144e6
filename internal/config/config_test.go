package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, int64(20), cfg.MaxUploadSizeMB)
	assert.Equal(t, "quote-photos", cfg.S3Bucket)
	assert.InDelta(t, 0.1, cfg.EstimateVariance, 1e-9)
	assert.Equal(t, float64(1000), cfg.DefaultSquareFootage)
	assert.Equal(t, "@every 15m", cfg.OverlayAuditSchedule)
	assert.Equal(t, time.Second, cfg.GeocoderInterval)
	assert.False(t, cfg.UseS3())
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("PUBLIC_RATE_LIMIT_PER_MIN", "5")
	t.Setenv("ESTIMATE_VARIANCE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 5, cfg.PublicRateLimitPerMin)
	assert.Equal(t, float64(0), cfg.EstimateVariance)
	assert.True(t, cfg.UseS3())
}

func TestCORSOrigins(t *testing.T) {
	cfg := Config{CORSAllowed: "https://grndwrk.app, https://admin.grndwrk.app,"}
	assert.Equal(t, []string{"https://grndwrk.app", "https://admin.grndwrk.app"}, cfg.CORSOrigins())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "America/Chicago", Config{Timezone: "America/Chicago"}.Location().String())
	assert.Equal(t, time.UTC, Config{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, time.UTC, Config{}.Location())
}

func TestUseS3(t *testing.T) {
	assert.True(t, Config{BlobDriver: "s3"}.UseS3())
	assert.False(t, Config{BlobDriver: "memory", S3Endpoint: "http://minio:9000"}.UseS3())
	assert.True(t, Config{S3AccessKeyID: "AKIA"}.UseS3())
	assert.False(t, Config{}.UseS3())
}
