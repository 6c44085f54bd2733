package config

import "testing"

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", ":memory:")
	t.Setenv("API_URL", "")

	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port: got %q", cfg.Port)
	}
	if cfg.DBDSN != ":memory:" {
		t.Fatalf("DB_DSN override ignored: %q", cfg.DBDSN)
	}
	if cfg.APIURL != "http://localhost:8081" {
		t.Fatalf("default api url: got %q", cfg.APIURL)
	}
}
