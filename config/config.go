// Package config handles key generator configuration.
//
// Settings are layered: built-in defaults, then the optional keygen.conf
// file, then command-line flags. Nothing here is written back to disk
// unless the user asks for a config template.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config holds runtime configuration for the key generator.
type Config struct {
	// Core
	DataDir string `conf:"datadir"`

	// Derivation
	Derivation DerivationConfig

	// Output
	Output OutputConfig

	// Logging
	Log LogConfig
}

// DerivationConfig controls mnemonic size and the BIP-44 path.
type DerivationConfig struct {
	CoinType    uint32 `conf:"derivation.coin_type"`    // SLIP-0044 coin type (501 = Solana)
	EntropyBits int    `conf:"derivation.entropy_bits"` // 128 = 12 words, 256 = 24 words
	Passphrase  bool   `conf:"derivation.passphrase"`   // Prompt for a BIP-39 passphrase at startup
}

// OutputConfig controls how derived keys are shown.
type OutputConfig struct {
	KeyFormat string `conf:"output.key_format"` // base58 or array
	ShowKeys  bool   `conf:"output.show_keys"`  // Show private keys in listings
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default config directory.
//
//	Linux:   ~/.klingnet-keygen
//	macOS:   ~/Library/Application Support/KlingnetKeygen
//	Windows: %APPDATA%\KlingnetKeygen
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-keygen"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "KlingnetKeygen")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "KlingnetKeygen")
		}
		return filepath.Join(home, "AppData", "Roaming", "KlingnetKeygen")
	default:
		return filepath.Join(home, ".klingnet-keygen")
	}
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "keygen.conf")
}
