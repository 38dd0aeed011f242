package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Storage selects the session backend: "memory" or "redis".
	Storage  string
	RedisURL string

	// Upstream API credentials. Empty keys degrade gracefully: task
	// generation falls back to templates, geolocation to the default region.
	AmapAPIKey      string
	AmapBaseURL     string
	DeepSeekAPIKey  string
	DeepSeekBaseURL string

	// LumiProjectID identifies the minting project for collectible metadata.
	LumiProjectID string

	// SweepInterval is how often the background sweeper walks sessions for
	// expired limited-time and dynamic tasks.
	SweepInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Storage:         getEnv("STORAGE", "memory"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		AmapAPIKey:      getEnv("AMAP_API_KEY", ""),
		AmapBaseURL:     getEnv("AMAP_BASE_URL", ""),
		DeepSeekAPIKey:  getEnv("DEEPSEEK_API_KEY", ""),
		DeepSeekBaseURL: getEnv("DEEPSEEK_BASE_URL", ""),
		LumiProjectID:   getEnv("LUMI_PROJECT_ID", ""),
		SweepInterval:   parseDuration(getEnv("SWEEP_INTERVAL", "1m")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
