package config

import "testing"

func TestConfigDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ServiceURL != "http://127.0.0.1:8080" || cfg.PollTimeout != 30 {
		t.Fatalf("unexpected bot defaults: %+v", cfg)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("metrics should be off by default: %q", cfg.MetricsAddr)
	}
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("SMP_HTTP_PORT", "9090")
	t.Setenv("SMP_BOT_TOKEN", "123:abc")
	t.Setenv("SMP_METRICS_ADDR", ":9091")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9090 {
		t.Fatalf("http port override failed: %d", cfg.HTTPPort)
	}
	if cfg.BotToken != "123:abc" {
		t.Fatalf("bot token override failed: %q", cfg.BotToken)
	}
	if cfg.MetricsAddr != ":9091" {
		t.Fatalf("metrics addr override failed: %q", cfg.MetricsAddr)
	}
	if cfg.GetHTTPAddr() != ":9090" {
		t.Fatalf("addr = %q", cfg.GetHTTPAddr())
	}
}

func TestResolveDefaultsAutoPicksPostgresWithDSN(t *testing.T) {
	t.Setenv("SMP_POSTGRES_DSN", "postgres://localhost/smp")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "postgres" {
		t.Fatalf("driver = %q, want postgres", cfg.DBDriver)
	}
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SMP_DB_DRIVER", "oracle")

	if _, err := New(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestResolveDefaultsPostgresRequiresDSN(t *testing.T) {
	t.Setenv("SMP_DB_DRIVER", "postgres")

	if _, err := New(); err == nil {
		t.Fatal("expected error when postgres has no DSN")
	}
}
