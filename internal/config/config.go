package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr      string
	LogLevel      slog.Level
	ServerBaseURL string
	ServerTimeout time.Duration
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		ServerBaseURL: envOr("GAME_SERVER_URL", "http://localhost:5000"),
		// The server runs thousands of AI simulations per turn, so a play
		// can legitimately take a while to resolve.
		ServerTimeout: 60 * time.Second,
	}

	if v := os.Getenv("GAME_SERVER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GAME_SERVER_TIMEOUT %q: %w", v, err)
		}
		c.ServerTimeout = d
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
