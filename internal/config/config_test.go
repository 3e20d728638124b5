package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SchedulePath != "data/schedule_data.json" {
		t.Errorf("SchedulePath = %q", cfg.SchedulePath)
	}
	if cfg.DB.Enabled() {
		t.Error("DB.Enabled() = true without DB_HOST")
	}
	if cfg.WatchlistTTL != 90*24*time.Hour {
		t.Errorf("WatchlistTTL = %v, want 2160h", cfg.WatchlistTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_HOST", "mysql")
	t.Setenv("WATCHLIST_TTL", "48h")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "-5")
	t.Setenv("AMQP_URL", "")
	t.Setenv("RABBITMQ_URL", "amqp://rabbit:5672/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if !cfg.DB.Enabled() {
		t.Error("DB.Enabled() = false with DB_HOST set")
	}
	if cfg.WatchlistTTL != 48*time.Hour {
		t.Errorf("WatchlistTTL = %v, want 48h", cfg.WatchlistTTL)
	}
	if cfg.AccessTTLMin != 60 {
		t.Errorf("AccessTTLMin = %d, want clamp to 60", cfg.AccessTTLMin)
	}
	if cfg.AMQPURL != "amqp://rabbit:5672/" {
		t.Errorf("AMQPURL = %q", cfg.AMQPURL)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingEnv) {
		t.Fatalf("Load() error = %v, want ErrMissingEnv", err)
	}
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %v, want 10s", cfg.TTL)
	}
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")
	t.Setenv("CACHE_ENABLED", "off")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || len(cfg.Methods) != 2 {
		t.Errorf("Methods = %v", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.TTL)
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"YES", false, true},
		{"off", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.val)
			if got := envBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("envBool(%q, %v) = %v, want %v", tt.val, tt.def, got, tt.want)
			}
		})
	}
}
