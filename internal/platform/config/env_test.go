package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	TTL int `env:"PARTSBOX_TEST_TTL" envDefault:"300"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.TTL != 300 {
		t.Fatalf("expected default ttl 300, got %d", cfg.TTL)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PARTSBOX_TEST_TTL", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
