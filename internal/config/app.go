package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort    = ":8080"
	defaultIdleTTL = 30 * time.Minute
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return defaultPort
	}
	return port
}

// SessionIdleTTL is how long a session may sit untouched before it is
// dropped from memory.
func SessionIdleTTL() (time.Duration, error) {
	ttlStr, ok := os.LookupEnv("SESSION_IDLE_TTL")
	if !ok {
		return defaultIdleTTL, nil
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return 0, fmt.Errorf("unable to parse SESSION_IDLE_TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}
	return ttl, nil
}

// CorsOrigins reads the comma-separated CORS_ORIGINS list. An empty list
// means any origin.
func CorsOrigins() []string {
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
