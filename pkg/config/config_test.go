package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Cache.Type != "memory" || cfg.Cache.TTL != 30*time.Minute || cfg.Cache.BucketMinutes != 1 {
		t.Fatalf("unexpected cache defaults %+v", cfg.Cache)
	}
	if cfg.Scorer.MaxChars != 500 || cfg.Scorer.MinChars != 10 {
		t.Fatalf("unexpected scorer defaults %+v", cfg.Scorer)
	}
	if cfg.Trending.DefaultThreshold != 0.3 {
		t.Fatalf("unexpected trending default %v", cfg.Trending.DefaultThreshold)
	}
}

func TestLoadRejectsBadCacheType(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  type: disk\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRejectsEventsWithoutBrokers(t *testing.T) {
	path := writeConfig(t, "environment: test\nevents:\n  enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "av-key")
	t.Setenv("REDDIT_CLIENT_ID", "rid")
	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")

	cfg, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.News.AlphaVantage.APIKey != "av-key" {
		t.Fatalf("env override missing: %+v", cfg.News.AlphaVantage)
	}
	if cfg.Social.Reddit.ClientID != "rid" {
		t.Fatalf("env override missing: %+v", cfg.Social.Reddit)
	}
	if len(cfg.Events.Brokers) != 2 {
		t.Fatalf("expected broker list, got %v", cfg.Events.Brokers)
	}
}
