package config

import (
	"reflect"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_DefaultsAndOverrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("PORT", "3001")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	// Logging
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")

	// App
	t.Setenv("DB_PATH", "db.sqlite")

	// Sessions
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("TOKEN_TTL", "72h")
	t.Setenv("COOKIE_MAX_AGE", "30m")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 5.0
	t.Setenv("RATE_BURST", "nope") // -> default 10

	// Web protection
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// Idempotency
	t.Setenv("IDEMPOTENCY_TTL", "48h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3001" || cfg.ReadTimeout != 2*time.Second || cfg.MaxHeaderBytes != 8192 {
		t.Fatalf("server fields: %+v", cfg)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q, want normalized release", cfg.GinMode)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty {
		t.Fatalf("logging fields: level=%q pretty=%v", cfg.LogLevel, cfg.LogPretty)
	}
	if cfg.DBPath != "db.sqlite" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.JWTSecret != "super-secret" || cfg.TokenTTL != 72*time.Hour || cfg.CookieMaxAge != 30*time.Minute {
		t.Fatalf("session fields: %+v", cfg)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate fields should fall back to defaults: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if want := []string{"https://a.com", "http://b"}; !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Fatalf("CORS origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security fields: %+v", cfg.Security)
	}
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("IdempotencyTTL = %v", cfg.IdempotencyTTL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("default port = %q, want 3000", cfg.Port)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("default TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if cfg.CookieMaxAge != time.Hour {
		t.Fatalf("default CookieMaxAge = %v, want 1h", cfg.CookieMaxAge)
	}
	if cfg.OTEL.Enabled {
		t.Fatalf("tracing should be off by default")
	}
}

func TestLoad_BoolsFollowTruthyParsing(t *testing.T) {
	t.Setenv("LOG_PRETTY", "on")
	t.Setenv("OTEL_ENABLED", "nope")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.LogPretty {
		t.Fatalf("LOG_PRETTY=on should enable pretty logs")
	}
	if cfg.OTEL.Enabled {
		t.Fatalf("OTEL_ENABLED=nope should read as false")
	}
}

// --- Load validation failures ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		k, v string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"blank jwt secret", "JWT_SECRET", " "},
		{"set-but-empty jwt secret", "JWT_SECRET", ""},
		{"set-but-empty port", "PORT", ""},
		{"set-but-empty db path", "DB_PATH", ""},
		{"zero token ttl", "TOKEN_TTL", "0s"},
		{"zero cookie age", "COOKIE_MAX_AGE", "0s"},
		{"negative rps", "RATE_RPS", "-1"},
		{"zero burst", "RATE_BURST", "0"},
		{"zero idem ttl", "IDEMPOTENCY_TTL", "0s"},
		{"bad sample ratio", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.k, tc.v)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.k, tc.v)
			}
		})
	}
}
