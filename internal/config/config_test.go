package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_FirecrawlKeyRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without FIRECRAWL_API_KEY")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_KVUploadRequiresCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("KV_UPLOAD_ENABLED", "true")
	t.Setenv("CF_ACCOUNT_ID", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when KV_UPLOAD_ENABLED=true without CF_ACCOUNT_ID")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.ServiceName != "draftboard-api" {
		t.Fatalf("unexpected ServiceName: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.DBURL != "" {
		t.Fatalf("expected empty DBURL by default, got %q", cfg.DBURL)
	}
	if cfg.FirecrawlBaseURL != "https://api.firecrawl.dev" {
		t.Fatalf("unexpected FirecrawlBaseURL: %q", cfg.FirecrawlBaseURL)
	}
	if cfg.FirecrawlTimeout != 90*time.Second {
		t.Fatalf("unexpected FirecrawlTimeout: %s", cfg.FirecrawlTimeout)
	}
	if cfg.BarttorvikBaseURL != "https://barttorvik.com" {
		t.Fatalf("unexpected BarttorvikBaseURL: %q", cfg.BarttorvikBaseURL)
	}
	if cfg.KVSnapshotKey != "draft-data" {
		t.Fatalf("unexpected KVSnapshotKey: %q", cfg.KVSnapshotKey)
	}
	if cfg.PlayerPageConcurrency != 4 {
		t.Fatalf("unexpected PlayerPageConcurrency: %d", cfg.PlayerPageConcurrency)
	}
	if cfg.SnapshotRetention != 30 {
		t.Fatalf("unexpected SnapshotRetention: %d", cfg.SnapshotRetention)
	}
	if !cfg.SwaggerEnabled {
		t.Fatalf("expected SwaggerEnabled=true in dev by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_ProdDisablesSwaggerByDefault(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected SwaggerEnabled=false in prod by default")
	}
}

func TestLoad_SourceOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("SOURCE_TANKATHON_URL", "https://tank.test/board")
	t.Setenv("SEASON_YEAR", "2027")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TankathonURL != "https://tank.test/board" {
		t.Fatalf("unexpected TankathonURL: %q", cfg.TankathonURL)
	}
	if cfg.SeasonYear != 2027 {
		t.Fatalf("unexpected SeasonYear: %d", cfg.SeasonYear)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_QStashRequiresCredentials(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without QSTASH_TOKEN")
	}

	t.Setenv("QSTASH_TOKEN", "qs-test")
	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.hoopboard.app")
	t.Setenv("INTERNAL_JOB_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without INTERNAL_JOB_TOKEN")
	}

	t.Setenv("INTERNAL_JOB_TOKEN", "job-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.QStashEnabled {
		t.Fatalf("expected QStashEnabled=true")
	}
	if cfg.QStashBaseURL != "https://qstash.upstash.io" {
		t.Fatalf("unexpected QStashBaseURL: %q", cfg.QStashBaseURL)
	}
	if cfg.QStashRetries != 3 {
		t.Fatalf("unexpected QStashRetries: %d", cfg.QStashRetries)
	}
}

func TestLoad_SnapshotRetentionValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("SNAPSHOT_RETENTION", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero SNAPSHOT_RETENTION")
	}
}

func TestLoad_CircuitEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FIRECRAWL_API_KEY", "fc-test")
	t.Setenv("BARTTORVIK_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero circuit failure count")
	}
}
