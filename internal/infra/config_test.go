package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clipforge_test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LLMRepairTimeout != 10*time.Second {
		t.Fatalf("LLMRepairTimeout = %v, want 10s", cfg.LLMRepairTimeout)
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 1 {
		t.Fatalf("pool size = %d/%d, want 10/1", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DBConnLifetime != time.Hour {
		t.Fatalf("DBConnLifetime = %v, want 1h", cfg.DBConnLifetime)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clipforge_test")
	t.Setenv("PORT", "9999")
	t.Setenv("LLM_REPAIR_TIMEOUT_SECONDS", "25")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_CONN_IDLE_MINUTES", "5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9999" {
		t.Fatalf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.LLMRepairTimeout != 25*time.Second {
		t.Fatalf("LLMRepairTimeout = %v, want 25s", cfg.LLMRepairTimeout)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.DBMaxConns != 4 {
		t.Fatalf("DBMaxConns = %d, want 4", cfg.DBMaxConns)
	}
	if cfg.DBConnIdleTime != 5*time.Minute {
		t.Fatalf("DBConnIdleTime = %v, want 5m", cfg.DBConnIdleTime)
	}
}
