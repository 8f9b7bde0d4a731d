package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("expected default cache TTL 300, got %d", cfg.CacheTTLSeconds)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("PARTSBOX_API_KEY", "env-key")
	t.Setenv("PARTSBOX_BASE_URL", "https://env.example/api/1")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-base-url", "https://flag.example/api/1", "-transport", "http", "-cache-ttl", "60"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("expected env API key, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://flag.example/api/1" {
		t.Fatalf("expected flag base URL to win, got %q", cfg.BaseURL)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.CacheTTLSeconds != 60 {
		t.Fatalf("expected cache TTL 60, got %d", cfg.CacheTTLSeconds)
	}
}
