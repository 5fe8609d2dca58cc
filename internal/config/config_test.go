package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{EnvPort, EnvLogLevel, EnvSnapshotDriver, EnvSnapshotFSRoot,
		EnvS3Bucket, EnvS3Region, EnvS3Endpoint, EnvS3PathStyle} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "fs", cfg.Snapshot.Driver)
	assert.Equal(t, "./snapshots", cfg.Snapshot.FSRoot)
	assert.Equal(t, "us-east-1", cfg.Snapshot.S3Region)
	assert.False(t, cfg.Snapshot.S3PathStyle)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvSnapshotDriver, "S3")
	t.Setenv(EnvS3Bucket, "plans")
	t.Setenv(EnvS3Endpoint, "http://localhost:9000")
	t.Setenv(EnvS3PathStyle, "true")

	cfg := Load()
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "s3", cfg.Snapshot.Driver)
	assert.Equal(t, "plans", cfg.Snapshot.S3Bucket)
	assert.Equal(t, "http://localhost:9000", cfg.Snapshot.S3Endpoint)
	assert.True(t, cfg.Snapshot.S3PathStyle)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	t.Setenv(EnvS3PathStyle, "maybe")

	cfg := Load()
	assert.Equal(t, 3000, cfg.Port)
	assert.False(t, cfg.Snapshot.S3PathStyle)
}
