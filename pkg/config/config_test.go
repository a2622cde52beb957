// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("expected default addr :8000, got %q", cfg.Server.Addr)
	}
	if cfg.Registry.Backend != "json" {
		t.Errorf("expected default registry backend json, got %q", cfg.Registry.Backend)
	}
	if cfg.LLM.HFBaseURL != "https://router.huggingface.co/v1" {
		t.Errorf("unexpected hf base url %q", cfg.LLM.HFBaseURL)
	}
	if cfg.LLM.Temperature != 0.8 {
		t.Errorf("expected default temperature 0.8, got %v", cfg.LLM.Temperature)
	}
	if cfg.Server.FixtureMode {
		t.Errorf("fixture mode should default to off")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parley.yaml")
	content := []byte("server:\n  addr: \":9001\"\nregistry:\n  backend: sqlite\n  path: agents.db\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9001" {
		t.Errorf("file value not applied, addr = %q", cfg.Server.Addr)
	}
	if cfg.Registry.Backend != "sqlite" || cfg.Registry.Path != "agents.db" {
		t.Errorf("registry config not applied: %+v", cfg.Registry)
	}
	// Untouched keys keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level, got %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PARLEY_LOG_LEVEL", "debug")
	t.Setenv("PARLEY_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("PARLEY_SERVER_FIXTURE_MODE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("env override not applied, log level = %q", cfg.Log.Level)
	}
	if cfg.LLM.GeminiAPIKey != "test-key" {
		t.Errorf("env override not applied, gemini key = %q", cfg.LLM.GeminiAPIKey)
	}
	if !cfg.Server.FixtureMode {
		t.Errorf("env override not applied for fixture mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("expected error for missing config file")
	}
}
