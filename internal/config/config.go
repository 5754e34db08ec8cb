package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Config struct {
	// Generation service
	BananaAPIBaseURL string

	// Server
	Port           string
	Environment    string
	AllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		BananaAPIBaseURL: getEnv("BANANA_API_BASE_URL", "http://localhost:8000"),

		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BananaAPIBaseURL == "" {
		return fmt.Errorf("BANANA_API_BASE_URL is required")
	}
	parsed, err := url.Parse(c.BananaAPIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("BANANA_API_BASE_URL must be an absolute URL, got %q", c.BananaAPIBaseURL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
