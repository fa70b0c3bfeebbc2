package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Version is the key generator release.
const Version = "0.1.0"

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help       bool
	Version    bool
	InitConfig string

	// Core
	DataDir string
	Config  string

	// Derivation
	CoinType    uint
	EntropyBits int
	Words       int
	Passphrase  bool

	// Output
	KeyFormat string
	ShowKeys  bool

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args
	Args []string

	// Explicitly-set flags (for zero-value and true/false overrides).
	SetCoinType   bool
	SetPassphrase bool
	SetShowKeys   bool
	SetLogJSON    bool
}

// ParseFlags parses command-line arguments (without the program name).
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("klingnet-keygen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")
	fs.StringVar(&f.InitConfig, "init-config", "", "Write a default config file to this path and exit")

	// Core
	fs.StringVar(&f.DataDir, "datadir", "", "Config directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	// Derivation
	fs.UintVar(&f.CoinType, "coin-type", 0, "SLIP-0044 coin type")
	fs.IntVar(&f.EntropyBits, "entropy-bits", 0, "Mnemonic entropy in bits")
	fs.IntVar(&f.Words, "words", 0, "Mnemonic length in words (overrides --entropy-bits)")
	fs.BoolVar(&f.Passphrase, "passphrase", false, "Prompt for a BIP-39 passphrase")

	// Output
	fs.StringVar(&f.KeyFormat, "key-format", "", "Private key format (base58 or array)")
	fs.BoolVar(&f.ShowKeys, "show-keys", false, "Show private keys in listings")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			f.Help = true
			return f, nil
		}
		return nil, err
	}

	f.SetCoinType = isFlagSet(fs, "coin-type")
	f.SetPassphrase = isFlagSet(fs, "passphrase")
	f.SetShowKeys = isFlagSet(fs, "show-keys")
	f.SetLogJSON = isFlagSet(fs, "log-json")

	f.Args = fs.Args()

	// Detect unparsed flags caused by positional arguments stopping the parser.
	for _, arg := range f.Args {
		if strings.HasPrefix(arg, "-") {
			return nil, fmt.Errorf("flag %q was not parsed (positional argument stopped parsing)", arg)
		}
	}

	return f, nil
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) error {
	// Core
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	// Derivation
	if f.SetCoinType {
		if f.CoinType > uint(^uint32(0)) {
			return fmt.Errorf("--coin-type %d out of range", f.CoinType)
		}
		cfg.Derivation.CoinType = uint32(f.CoinType)
	}
	if f.EntropyBits != 0 {
		cfg.Derivation.EntropyBits = f.EntropyBits
	}
	if f.Words != 0 {
		bits, err := wordsToBits(fmt.Sprint(f.Words))
		if err != nil {
			return fmt.Errorf("--words: %w", err)
		}
		cfg.Derivation.EntropyBits = bits
	}
	if f.SetPassphrase {
		cfg.Derivation.Passphrase = f.Passphrase
	}

	// Output
	if f.KeyFormat != "" {
		cfg.Output.KeyFormat = f.KeyFormat
	}
	if f.SetShowKeys {
		cfg.Output.ShowKeys = f.ShowKeys
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
	return nil
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	usage := `Klingnet Keygen - HD wallet key derivation (BIP-39 / SLIP-0010 / Ed25519)

Usage:
  klingnet-keygen [options]
  klingnet-keygen --help

Commands:
  --help, -h        Show this help message
  --version, -v     Show version information
  --init-config     Write a default config file to the given path and exit

Core Options:
  --datadir         Config directory (default: ~/.klingnet-keygen)
  --config, -c      Config file path (default: <datadir>/keygen.conf)

Derivation Options:
  --coin-type       SLIP-0044 coin type (default: 501, Solana)
  --entropy-bits    Mnemonic entropy: 128 (default) to 256, multiples of 32
  --words           Mnemonic length: 12, 15, 18, 21 or 24
  --passphrase      Prompt for a BIP-39 passphrase

Output Options:
  --key-format      Private key format: base58 (default) or array
  --show-keys       Show private keys in listings

Logging Options:
  --log-level       Log level: debug, info, warn (default), error
  --log-file        Log file path (default: stderr only)
  --log-json        Output logs as JSON

Examples:
  # Start an interactive session
  klingnet-keygen

  # 24-word mnemonics, keys as JSON byte arrays
  klingnet-keygen --words=24 --key-format=array

Note:
  Mnemonics and keys live in memory only and are wiped when the session
  ends. Nothing is written to disk.
`
	fmt.Fprint(w, usage)
}

// Load builds the configuration with the following precedence:
// 1. Default values
// 2. Config file (if present)
// 3. Command-line flags
func Load(args []string) (*Config, *Flags, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg := Default()
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	// Determine config file path
	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	// Load config file
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}

	// Apply file config
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	// Apply flags (highest precedence)
	if err := ApplyFlags(cfg, flags); err != nil {
		return nil, nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, flags, nil
}
