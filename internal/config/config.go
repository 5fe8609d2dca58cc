// Package config reads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is the process-wide configuration of the CLI and the server.
type Config struct {
	Port     int
	LogLevel string
	Snapshot Snapshot
}

// Snapshot selects and configures the snapshot storage driver.
type Snapshot struct {
	Driver string // fs | memory | s3
	FSRoot string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Environment variables read by Load.
const (
	EnvPort             = "EVACENV_PORT"
	EnvLogLevel         = "EVACENV_LOG_LEVEL"
	EnvSnapshotDriver   = "EVACENV_SNAPSHOT_DRIVER"
	EnvSnapshotFSRoot   = "EVACENV_SNAPSHOT_FS_ROOT"
	EnvS3Bucket         = "EVACENV_SNAPSHOT_S3_BUCKET"
	EnvS3Region         = "EVACENV_SNAPSHOT_S3_REGION"
	EnvS3Endpoint       = "EVACENV_SNAPSHOT_S3_ENDPOINT"
	EnvS3PathStyle      = "EVACENV_SNAPSHOT_S3_PATH_STYLE"
	defaultPort         = 3000
	defaultLogLevel     = "info"
	defaultDriver       = "fs"
	defaultSnapshotRoot = "./snapshots"
	defaultS3Region     = "us-east-1"
)

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
func Load() *Config {
	return &Config{
		Port:     getEnvAsInt(EnvPort, defaultPort),
		LogLevel: getEnv(EnvLogLevel, defaultLogLevel),
		Snapshot: Snapshot{
			Driver:      strings.ToLower(getEnv(EnvSnapshotDriver, defaultDriver)),
			FSRoot:      getEnv(EnvSnapshotFSRoot, defaultSnapshotRoot),
			S3Bucket:    getEnv(EnvS3Bucket, ""),
			S3Region:    getEnv(EnvS3Region, defaultS3Region),
			S3Endpoint:  getEnv(EnvS3Endpoint, ""),
			S3PathStyle: getEnvAsBool(EnvS3PathStyle, false),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
