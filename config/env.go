package config

import (
	"fmt"
	"os"
)

// Env fetches a required environment variable. The returned error names the
// missing variable so operators can fix the deployment without digging.
func Env(key string) (string, error) {
	value, found := os.LookupEnv(key)
	if !found || value == "" {
		return "", fmt.Errorf("environment variable %q is required but not set", key)
	}
	return value, nil
}

// EnvDefault fetches an optional environment variable, falling back when
// unset or empty.
func EnvDefault(key, fallback string) string {
	if value, found := os.LookupEnv(key); found && value != "" {
		return value
	}
	return fallback
}
