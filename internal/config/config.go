// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every configurable knob of the service.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Session   SessionConfig
	TextGen   TextGenConfig
	DBPath    string
	UploadDir string
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// AuthConfig carries the token signing secret.
type AuthConfig struct {
	Secret string
}

// SessionConfig controls the in-memory session lifecycle.
type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// TextGenConfig selects and parameterizes the text-generation provider.
type TextGenConfig struct {
	Provider    string // "groq", "ark" or "" for fallback-only operation
	MaxAttempts int

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	ArkAPIKey  string
	ArkModel   string
	ArkBaseURL string
	ArkRegion  string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	textgen, err := loadTextGenConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Auth:      AuthConfig{Secret: getEnvOrDefault("JWT_SECRET", "mysecretkey")},
		Session:   session,
		TextGen:   textgen,
		DBPath:    getEnvOrDefault("DB_PATH", "data/bmc-mentor.sqlite"),
		UploadDir: getEnvOrDefault("UPLOAD_DIR", "uploads"),
	}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// Accept ":3000" or "127.0.0.1:3000" as given.
		return ServerConfig{Addr: port}, nil
	}
	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}
	return ServerConfig{Addr: ":" + port}, nil
}

func loadSessionConfig() (SessionConfig, error) {
	ttl, err := parseDurationEnv("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return SessionConfig{}, err
	}
	interval, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", 30*time.Minute)
	if err != nil {
		return SessionConfig{}, err
	}
	return SessionConfig{TTL: ttl, SweepInterval: interval}, nil
}

func loadTextGenConfig() (TextGenConfig, error) {
	maxAttempts := 3
	if override, err := parseOptionalIntEnv("TEXTGEN_MAX_ATTEMPTS"); err != nil {
		return TextGenConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return TextGenConfig{}, fmt.Errorf("TEXTGEN_MAX_ATTEMPTS must be at least 1, got %d", *override)
		}
		maxAttempts = *override
	}

	cfg := TextGenConfig{
		Provider:    strings.ToLower(strings.TrimSpace(os.Getenv("TEXTGEN_PROVIDER"))),
		MaxAttempts: maxAttempts,

		GroqAPIKey:  strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		GroqModel:   getEnvOrDefault("GROQ_MODEL", "openai/gpt-oss-120b"),
		GroqBaseURL: getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),

		ArkAPIKey:  strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkModel:   strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL: getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:  getEnvOrDefault("ARK_REGION", "cn-beijing"),
	}

	// Infer the provider from whichever credentials are present.
	if cfg.Provider == "" {
		switch {
		case cfg.GroqAPIKey != "":
			cfg.Provider = "groq"
		case cfg.ArkAPIKey != "":
			cfg.Provider = "ark"
		}
	}

	switch cfg.Provider {
	case "", "groq", "ark":
	default:
		return TextGenConfig{}, fmt.Errorf("unknown TEXTGEN_PROVIDER %q", cfg.Provider)
	}

	return cfg, nil
}

// Enabled reports whether a live provider is configured.
func (c TextGenConfig) Enabled() bool {
	switch c.Provider {
	case "groq":
		return c.GroqAPIKey != "" && c.GroqModel != ""
	case "ark":
		return c.ArkAPIKey != "" && c.ArkModel != ""
	default:
		return false
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
