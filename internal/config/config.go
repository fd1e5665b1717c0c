package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Page HTML source. "{domain}" is replaced per request.
	ParsoidURL     string
	ParsoidTimeout time.Duration

	// Auth for /api routes. Empty disables the check.
	TalkgestAPIKey string

	// Parsing
	MaxHTMLBytes int64
	TopicWorkers int

	// Output cache. Empty RedisURL disables caching.
	RedisURL string
	CacheTTL time.Duration

	// Stats
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		ParsoidURL:     envOr("PARSOID_URL", "https://{domain}/api/rest_v1"),
		ParsoidTimeout: envDuration("PARSOID_TIMEOUT", 30*time.Second),

		TalkgestAPIKey: os.Getenv("TALKGEST_API_KEY"),

		MaxHTMLBytes: envInt64("MAX_HTML_BYTES", 20971520), // 20MB
		TopicWorkers: envInt("TOPIC_WORKERS", 4),

		RedisURL: os.Getenv("REDIS_URL"),
		CacheTTL: envDuration("CACHE_TTL", 24*time.Hour),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.ParsoidTimeout <= 0 {
		cfg.ParsoidTimeout = 30 * time.Second
	}
	if cfg.MaxHTMLBytes <= 0 {
		cfg.MaxHTMLBytes = 20971520
	}
	if cfg.TopicWorkers <= 0 {
		cfg.TopicWorkers = 4
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	probe := strings.ReplaceAll(c.ParsoidURL, "{domain}", "example.org")
	u, err := url.Parse(probe)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PARSOID_URL must be an absolute http(s) URL, got %q", c.ParsoidURL)
	}
	if c.RedisURL != "" && c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_URL is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
