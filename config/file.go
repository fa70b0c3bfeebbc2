package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads configuration from a .conf file. A missing file yields an
// empty map.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse key = value
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "datadir":
		cfg.DataDir = value

	// Derivation
	case "derivation.coin_type", "coin_type":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		cfg.Derivation.CoinType = uint32(n)
	case "derivation.entropy_bits":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Derivation.EntropyBits = n
	case "derivation.words":
		bits, err := wordsToBits(value)
		if err != nil {
			return err
		}
		cfg.Derivation.EntropyBits = bits
	case "derivation.passphrase":
		cfg.Derivation.Passphrase = parseBool(value)

	// Output
	case "output.key_format":
		cfg.Output.KeyFormat = value
	case "output.show_keys":
		cfg.Output.ShowKeys = parseBool(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

// wordsToBits converts a mnemonic word count to its entropy size.
func wordsToBits(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 12 || n > 24 || n%3 != 0 {
		return 0, fmt.Errorf("word count must be 12, 15, 18, 21 or 24")
	}
	return n * 32 / 3, nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a default configuration file. An existing file
// is left alone.
func WriteDefaultConfig(path string) error {
	content := `# Klingnet Keygen Configuration
#
# The key generator never writes mnemonics or keys to disk. This file only
# controls derivation and display settings.

# ============================================================================
# Derivation
# ============================================================================

# SLIP-0044 coin type: accounts are derived at m/44'/<coin_type>'/<n>'/0'
derivation.coin_type = 501

# Mnemonic entropy: 128 (12 words) to 256 (24 words), multiples of 32
derivation.entropy_bits = 128

# Prompt for an optional BIP-39 passphrase at startup
# derivation.passphrase = false

# ============================================================================
# Output
# ============================================================================

# Private key format: base58 or array
output.key_format = base58

# Show private keys in listings (toggle at runtime with "keys on|off")
# output.show_keys = false

# ============================================================================
# Logging
# ============================================================================

log.level = warn
# log.file =
log.json = false
`
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
