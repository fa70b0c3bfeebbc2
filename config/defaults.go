package config

import (
	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

// Default returns the default configuration: Solana accounts, 12-word
// mnemonics, base58 keys hidden until asked for.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		Derivation: DerivationConfig{
			CoinType:    wallet.CoinTypeSolana,
			EntropyBits: wallet.MnemonicEntropyBits,
			Passphrase:  false,
		},
		Output: OutputConfig{
			KeyFormat: string(crypto.FormatBase58),
			ShowKeys:  false,
		},
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}
