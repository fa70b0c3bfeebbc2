package wallet

import (
	"crypto/sha512"
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// seedIterations is the BIP-39 PBKDF2 round count.
const seedIterations = 2048

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-SHA512 as specified in BIP-39.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	return SeedFromMnemonicBytes([]byte(mnemonic), []byte(passphrase))
}

// SeedFromMnemonicBytes is SeedFromMnemonic for callers that keep secrets in
// zeroable buffers. The inputs are not modified; the caller owns the result
// and should Zero it once consumed.
func SeedFromMnemonicBytes(mnemonic, passphrase []byte) ([]byte, error) {
	normalized := NormalizeMnemonic(string(mnemonic))
	if !bip39.IsMnemonicValid(normalized) {
		return nil, fmt.Errorf("derive seed: %w", ErrInvalidMnemonic)
	}

	password := norm.NFKD.AppendString(nil, normalized)
	salt := norm.NFKD.Append([]byte("mnemonic"), passphrase...)
	defer Zero(password)
	defer Zero(salt)

	return pbkdf2.Key(password, salt, seedIterations, SeedSize, sha512.New), nil
}
