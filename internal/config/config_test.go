package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServiceURL != DefaultServiceURL {
		t.Errorf("unexpected service url %q", cfg.ServiceURL)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("unexpected max attempts %d", cfg.MaxAttempts)
	}
	if cfg.Debounce() != DefaultDebounce {
		t.Errorf("unexpected debounce %v", cfg.Debounce())
	}
	delays := cfg.RetryDelays()
	if len(delays) != 2 || delays[0] != 10*time.Second || delays[1] != 30*time.Second {
		t.Errorf("unexpected retry delays %v", delays)
	}
	if cfg.DataDir != dir {
		t.Errorf("expected data dir to default to the config dir, got %q", cfg.DataDir)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := `{"service_url": "https://extract.example.com", "debounce_ms": 1000, "max_attempts": 5}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServiceURL != "https://extract.example.com" {
		t.Errorf("unexpected service url %q", cfg.ServiceURL)
	}
	if cfg.Debounce() != time.Second {
		t.Errorf("unexpected debounce %v", cfg.Debounce())
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("unexpected max attempts %d", cfg.MaxAttempts)
	}
}

func TestLoad_ZeroDebounceIsImmediate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"debounce_ms": 0}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Explicit zero means no debounce, distinct from the absent-field default.
	if cfg.Debounce() != 0 {
		t.Errorf("expected immediate extraction, got %v", cfg.Debounce())
	}
}

func TestLoad_RejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Fatal("expected invalid JSON to error")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	debounce := int64(2500)
	in := &Config{
		ServiceURL: "https://extract.example.com",
		DebounceMs: &debounce,
		TrialDays:  30,
	}
	if err := Save(dir, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.ServiceURL != in.ServiceURL {
		t.Errorf("service url did not round-trip: %q", out.ServiceURL)
	}
	if out.Debounce() != 2500*time.Millisecond {
		t.Errorf("debounce did not round-trip: %v", out.Debounce())
	}
	if out.TrialDays != 30 {
		t.Errorf("trial days did not round-trip: %d", out.TrialDays)
	}
}
