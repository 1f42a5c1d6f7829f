package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	sitekit "github.com/goliatone/go-sitekit"
)

func TestConfigFromEnvOverlaysValues(t *testing.T) {
	env := map[string]string{
		"SITEKIT_STORAGE_PROVIDER": "bun",
		"SITEKIT_DB_DRIVER":        "postgres",
		"SITEKIT_DB_DSN":           "postgres://localhost/sitekit",
		"SITEKIT_DB_MIGRATE":       "false",
		"SITEKIT_CACHE_TTL":        "30s",
		"SITEKIT_CORS_ORIGINS":     "https://a.example, https://b.example,",
		"SITEKIT_MARKDOWN_DIR":     "./content",
		"SITEKIT_DEFAULT_LAYOUT":   "3",
	}
	cfg, err := configFromEnv(sitekit.DefaultConfig(), func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("config from env: %v", err)
	}
	if cfg.Storage.Provider != "bun" || cfg.Storage.Driver != "postgres" || cfg.Storage.DSN == "" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Storage.Migrate {
		t.Fatalf("expected migrate disabled")
	}
	if cfg.Cache.DefaultTTL != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %s", cfg.Cache.DefaultTTL)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.HTTP.CORSOrigins)
	}
	if !cfg.Features.Markdown || !cfg.Markdown.Enabled || cfg.Markdown.ContentDir != "./content" {
		t.Fatalf("expected markdown enabled, got %+v", cfg.Markdown)
	}
	if cfg.Layouts.Default != 3 {
		t.Fatalf("expected layout 3, got %d", cfg.Layouts.Default)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
}

func TestConfigFromEnvRejectsMalformedNumbers(t *testing.T) {
	env := map[string]string{"SITEKIT_DB_MAX_OPEN_CONNS": "many"}
	if _, err := configFromEnv(sitekit.DefaultConfig(), func(key string) string { return env[key] }); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRunImportOnly(t *testing.T) {
	dir := t.TempDir()
	pagesDir := filepath.Join(dir, "pages")
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	doc := []byte("---\ntitle: Visit Us\n---\nOpen daily.\n")
	if err := os.WriteFile(filepath.Join(pagesDir, "visit.md"), doc, 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	t.Setenv("SITEKIT_MARKDOWN_DIR", dir)
	t.Setenv("SITEKIT_LOG_PROVIDER", "none")

	args := []string{"-env", filepath.Join(dir, "missing.env"), "-import", "pages", "-import-only"}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunImportWithoutMarkdownDir(t *testing.T) {
	t.Setenv("SITEKIT_MARKDOWN_DIR", "")
	t.Setenv("SITEKIT_LOG_PROVIDER", "none")

	args := []string{"-env", filepath.Join(t.TempDir(), "missing.env"), "-import", "pages", "-import-only"}
	if err := run(context.Background(), args); err == nil {
		t.Fatalf("expected error without markdown directory")
	}
}
