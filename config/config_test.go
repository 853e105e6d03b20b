package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"threadloop/config"
	"threadloop/crypto"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RPCAddress == "" || cfg.DataDir == "" || cfg.NetworkName == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if _, err := crypto.DecodeAddress(cfg.AdminAddress); err != nil {
		t.Fatalf("generated admin address invalid: %v", err)
	}
	if _, err := os.Stat(cfg.AdminKeyFile); err != nil {
		t.Fatalf("admin key file missing: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// A second load reads the file it just created.
	reloaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.AdminAddress != cfg.AdminAddress {
		t.Fatalf("admin address changed between loads")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "RPCAddress = \"127.0.0.1:8645\"\nMysteryKnob = true\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("expected unknown-key error, got %v", err)
	}
}

func TestValidateRejectsBadAdmin(t *testing.T) {
	cfg := &config.Config{
		RPCAddress:   "127.0.0.1:8645",
		DataDir:      "./data",
		AdminAddress: "not-an-address",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for malformed admin address")
	}

	cfg.AdminAddress = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for missing admin address")
	}

	zero := crypto.NewAddress(crypto.ThreadPrefix, make([]byte, 20))
	cfg.AdminAddress = zero.String()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for zero admin address")
	}
}
