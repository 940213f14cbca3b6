// Package config centralizes environment-variable lookups so cmd/* binaries
// share one fallback convention instead of each redefining getEnv.
package config

import "os"

// Get returns the environment variable named key, or fallback if it is
// unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
