package config

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

// Validate checks the config for obvious user mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Derivation.CoinType > wallet.MaxAccount {
		return fmt.Errorf("derivation.coin_type must be in range [0, %d]", wallet.MaxAccount)
	}
	if _, err := wallet.NewMnemonicCodec(cfg.Derivation.EntropyBits, nil); err != nil {
		return fmt.Errorf("derivation.entropy_bits: %w", err)
	}

	format, err := crypto.ParseKeyFormat(cfg.Output.KeyFormat)
	if err != nil {
		return fmt.Errorf("output.key_format: %w", err)
	}
	cfg.Output.KeyFormat = string(format)

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q must be debug, info, warn, error or disabled", cfg.Log.Level)
	}
	return nil
}
