package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"threadloop/crypto"

	"github.com/BurntSushi/toml"
)

type Config struct {
	RPCAddress   string `toml:"RPCAddress"`
	DataDir      string `toml:"DataDir"`
	NetworkName  string `toml:"NetworkName"`
	AdminAddress string `toml:"AdminAddress"`
	AdminKeyFile string `toml:"AdminKeyFile"`
	Env          string `toml:"Env"`
}

// Load loads the configuration from the given path, creating a default file
// (with a freshly generated admin key) when none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config file %s contains unknown keys: %v", path, undecoded)
	}

	applyDefaults(cfg, path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config, path string) {
	if strings.TrimSpace(cfg.RPCAddress) == "" {
		cfg.RPCAddress = "127.0.0.1:8645"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = filepath.Join(filepath.Dir(path), "data")
	}
	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "threadloop-local"
	}
}

// Validate checks the configuration for use by the node daemon.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RPCAddress) == "" {
		return fmt.Errorf("RPCAddress must be configured")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("DataDir must be configured")
	}
	if strings.TrimSpace(c.AdminAddress) == "" {
		return fmt.Errorf("AdminAddress must be configured")
	}
	addr, err := crypto.DecodeAddress(c.AdminAddress)
	if err != nil {
		return fmt.Errorf("AdminAddress: %w", err)
	}
	if addr.Raw() == [20]byte{} {
		return fmt.Errorf("AdminAddress must not be the zero address")
	}
	return nil
}

// Admin returns the decoded admin principal.
func (c *Config) Admin() ([20]byte, error) {
	addr, err := crypto.DecodeAddress(c.AdminAddress)
	if err != nil {
		return [20]byte{}, err
	}
	return addr.Raw(), nil
}

func createDefault(path string) (*Config, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate admin key: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	keyFile := filepath.Join(dir, "admin.key")
	if err := os.WriteFile(keyFile, []byte(hex.EncodeToString(key.Bytes())), 0o600); err != nil {
		return nil, fmt.Errorf("write admin key: %w", err)
	}

	cfg := &Config{
		AdminAddress: key.PubKey().Address().String(),
		AdminKeyFile: keyFile,
	}
	applyDefaults(cfg, path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode default config: %w", err)
	}
	return cfg, nil
}
