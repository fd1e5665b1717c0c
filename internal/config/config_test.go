package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "PARSOID_URL", "PARSOID_TIMEOUT", "TALKGEST_API_KEY",
		"MAX_HTML_BYTES", "TOPIC_WORKERS", "REDIS_URL", "CACHE_TTL", "STATS_WINDOW"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("expected port 8091, got %q", cfg.Port)
	}
	if cfg.ParsoidURL != "https://{domain}/api/rest_v1" {
		t.Errorf("unexpected parsoid url %q", cfg.ParsoidURL)
	}
	if cfg.TopicWorkers != 4 || cfg.MaxHTMLBytes != 20971520 {
		t.Errorf("unexpected limits: workers=%d bytes=%d", cfg.TopicWorkers, cfg.MaxHTMLBytes)
	}
	if cfg.CacheTTL != 24*time.Hour || cfg.StatsWindow != time.Hour {
		t.Errorf("unexpected durations: ttl=%v window=%v", cfg.CacheTTL, cfg.StatsWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_ClampsNonPositive(t *testing.T) {
	t.Setenv("TOPIC_WORKERS", "-2")
	t.Setenv("MAX_HTML_BYTES", "0")
	t.Setenv("PARSOID_TIMEOUT", "garbage")
	cfg := Load()
	if cfg.TopicWorkers != 4 {
		t.Errorf("expected workers clamped to 4, got %d", cfg.TopicWorkers)
	}
	if cfg.MaxHTMLBytes != 20971520 {
		t.Errorf("expected bytes clamped, got %d", cfg.MaxHTMLBytes)
	}
	if cfg.ParsoidTimeout != 30*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.ParsoidTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Port: "8091", ParsoidURL: "http://localhost:8000/{domain}/v3", CacheTTL: time.Hour}
	if err := base.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	bad := base
	bad.ParsoidURL = "{domain}/api"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for relative parsoid url")
	}

	noTTL := base
	noTTL.RedisURL = "redis://localhost:6379/0"
	noTTL.CacheTTL = 0
	if err := noTTL.Validate(); err == nil {
		t.Error("expected error for zero cache ttl with redis enabled")
	}
}
