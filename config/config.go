// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	Port              int
	DBPath            string
	LogLevel          string
	AllowedOrigins    []string
	MaxUploadBytes    int64
	RunRetention      time.Duration
	RetentionInterval time.Duration
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "20"), 10, 64)
	if err != nil || maxMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", os.Getenv("MAX_UPLOAD_MB"))
	}

	retention, err := time.ParseDuration(getEnv("RUN_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_RETENTION: %w", err)
	}

	interval, err := time.ParseDuration(getEnv("RETENTION_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_INTERVAL: %w", err)
	}

	return &Config{
		Port:              port,
		DBPath:            getEnv("DB_PATH", "analyzer.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:    parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		MaxUploadBytes:    maxMB << 20,
		RunRetention:      retention,
		RetentionInterval: interval,
	}, nil
}

// SlogLevel maps LogLevel onto slog; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
