// Package config reads service configuration from the environment. Each
// binary loads an optional .env file first, then falls back to defaults
// for anything unset.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file when one exists. Missing files are not an error:
// deployments configure through real environment variables.
func Load() {
	_ = godotenv.Load()
}

// Getenv returns the value of key, or def when key is unset or empty.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetenvInt returns the integer value of key, or def when unset or invalid.
func GetenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetenvDuration returns the duration value of key, or def when unset or
// invalid.
func GetenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
