package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keygen.conf")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(Default()) error: %v", err)
	}
	if cfg.Derivation.CoinType != 501 {
		t.Errorf("coin type = %d, want 501", cfg.Derivation.CoinType)
	}
	if cfg.Derivation.EntropyBits != 128 {
		t.Errorf("entropy bits = %d, want 128", cfg.Derivation.EntropyBits)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConf(t, `
# comment
derivation.coin_type = 501
output.key_format = "array"
log.level = 'debug'
`)
	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if values["output.key_format"] != "array" {
		t.Errorf("key_format = %q, want array", values["output.key_format"])
	}
	if values["log.level"] != "debug" {
		t.Errorf("log.level = %q, want debug", values["log.level"])
	}
	if len(values) != 3 {
		t.Errorf("len(values) = %d, want 3", len(values))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("missing file should give empty values, got %v", values)
	}
}

func TestLoadFile_BadLine(t *testing.T) {
	path := writeConf(t, "log.level = info\nthis line is wrong\n")
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("LoadFile() error = %v, want line 2 error", err)
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := Default()
	err := ApplyFileConfig(cfg, map[string]string{
		"derivation.coin_type":  "60",
		"derivation.words":      "24",
		"derivation.passphrase": "yes",
		"output.show_keys":      "on",
		"log.json":              "true",
		"unknown.key":           "ignored",
	})
	if err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}
	if cfg.Derivation.CoinType != 60 {
		t.Errorf("coin type = %d, want 60", cfg.Derivation.CoinType)
	}
	if cfg.Derivation.EntropyBits != 256 {
		t.Errorf("entropy bits = %d, want 256", cfg.Derivation.EntropyBits)
	}
	if !cfg.Derivation.Passphrase || !cfg.Output.ShowKeys || !cfg.Log.JSON {
		t.Error("boolean keys were not applied")
	}
}

func TestApplyFileConfig_BadValues(t *testing.T) {
	for _, kv := range [][2]string{
		{"derivation.coin_type", "-1"},
		{"derivation.coin_type", "abc"},
		{"derivation.entropy_bits", "lots"},
		{"derivation.words", "13"},
	} {
		if err := ApplyFileConfig(Default(), map[string]string{kv[0]: kv[1]}); err == nil {
			t.Errorf("%s = %s should fail", kv[0], kv[1])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"24 words", func(c *Config) { c.Derivation.EntropyBits = 256 }, false},
		{"bad entropy", func(c *Config) { c.Derivation.EntropyBits = 100 }, true},
		{"coin type too big", func(c *Config) { c.Derivation.CoinType = 1 << 31 }, true},
		{"bad key format", func(c *Config) { c.Output.KeyFormat = "hex" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) should fail")
	}
}

func TestValidate_CanonicalKeyFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.KeyFormat = "json"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.Output.KeyFormat != "array" {
		t.Errorf("key format = %q, want array", cfg.Output.KeyFormat)
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"--coin-type=0", "--words", "24", "--key-format=array", "--show-keys", "--log-json=false"})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if !f.SetCoinType || f.CoinType != 0 {
		t.Errorf("coin type flag = %d (set %v)", f.CoinType, f.SetCoinType)
	}
	if !f.SetShowKeys || !f.ShowKeys {
		t.Error("--show-keys not recorded")
	}
	if !f.SetLogJSON || f.LogJSON {
		t.Error("--log-json=false not recorded")
	}
	if f.SetPassphrase {
		t.Error("--passphrase was not given")
	}

	cfg := Default()
	cfg.Log.JSON = true
	if err := ApplyFlags(cfg, f); err != nil {
		t.Fatalf("ApplyFlags() error: %v", err)
	}
	if cfg.Derivation.CoinType != 0 {
		t.Errorf("coin type = %d, want 0", cfg.Derivation.CoinType)
	}
	if cfg.Derivation.EntropyBits != 256 {
		t.Errorf("entropy bits = %d, want 256", cfg.Derivation.EntropyBits)
	}
	if cfg.Output.KeyFormat != "array" || !cfg.Output.ShowKeys {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Log.JSON {
		t.Error("--log-json=false should override the config value")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	if _, err := ParseFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag should fail")
	}
	if _, err := ParseFlags([]string{"--show-keys", "yes", "--words=24"}); err == nil {
		t.Error("flag after positional argument should fail")
	}

	f, err := ParseFlags([]string{"-h"})
	if err != nil {
		t.Fatalf("ParseFlags(-h) error: %v", err)
	}
	if !f.Help {
		t.Error("-h should set Help")
	}
}

func TestApplyFlags_BadWords(t *testing.T) {
	f, err := ParseFlags([]string{"--words=11"})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if err := ApplyFlags(Default(), f); err == nil {
		t.Error("--words=11 should fail")
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConf(t, "output.key_format = array\nlog.level = info\nderivation.entropy_bits = 192\n")

	cfg, _, err := Load([]string{"-c", path, "--log-level=error"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.KeyFormat != "array" {
		t.Errorf("key format = %q, want array from file", cfg.Output.KeyFormat)
	}
	if cfg.Derivation.EntropyBits != 192 {
		t.Errorf("entropy bits = %d, want 192 from file", cfg.Derivation.EntropyBits)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log level = %q, want error from flags", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConf(t, "derivation.entropy_bits = 100\n")
	if _, _, err := Load([]string{"--config", path}); err == nil {
		t.Error("invalid file value should fail Load")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keygen.conf")
	if err := WriteDefaultConfig(path); err != nil {
		t.Fatalf("WriteDefaultConfig() error: %v", err)
	}
	if err := WriteDefaultConfig(path); err == nil {
		t.Error("second write should not overwrite an existing file")
	}

	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	cfg := Default()
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("template should validate: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("template config = %+v, want defaults", cfg)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/kg"}
	if got := cfg.ConfigFile(); got != filepath.Join("/tmp/kg", "keygen.conf") {
		t.Errorf("ConfigFile() = %q", got)
	}
}
