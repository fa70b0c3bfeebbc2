// Package wallet implements the HD derivation pipeline: BIP-39 mnemonics,
// seed stretching, SLIP-0010 path derivation and the account pipeline that
// ties them to Ed25519 keypairs.
package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 12-word mnemonics.
const MnemonicEntropyBits = 128

// MnemonicCodec encodes entropy into checksummed BIP-39 mnemonics and
// validates them back. A codec is bound to a single entropy size, so a
// 24-word phrase fails validation on a 12-word codec.
type MnemonicCodec struct {
	bits   int
	words  int
	source EntropySource
}

// NewMnemonicCodec creates a codec for the given entropy size.
// A nil source uses SystemEntropy.
func NewMnemonicCodec(bits int, source EntropySource) (*MnemonicCodec, error) {
	if err := checkEntropyBits(bits); err != nil {
		return nil, err
	}
	if source == nil {
		source = SystemEntropy
	}
	return &MnemonicCodec{
		bits:   bits,
		words:  (bits + bits/32) / 11,
		source: source,
	}, nil
}

// DefaultCodec returns a 12-word codec backed by the system CSPRNG.
func DefaultCodec() *MnemonicCodec {
	c, _ := NewMnemonicCodec(MnemonicEntropyBits, nil)
	return c
}

// WordCount returns the number of words this codec produces and accepts.
func (c *MnemonicCodec) WordCount() int {
	return c.words
}

// Generate creates a new mnemonic from fresh entropy.
func (c *MnemonicCodec) Generate() (string, error) {
	entropy, err := c.source.Entropy(c.bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	defer Zero(entropy)
	return c.Encode(entropy)
}

// Encode maps raw entropy to its mnemonic.
func (c *MnemonicCodec) Encode(entropy []byte) (string, error) {
	if len(entropy)*8 != c.bits {
		return "", fmt.Errorf("%w: got %d", ErrEntropySize, len(entropy)*8)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// Check validates a mnemonic and reports why it is invalid. The returned error
// wraps ErrMnemonicLength, ErrUnknownWord (as a *WordError) or ErrChecksum.
func (c *MnemonicCodec) Check(mnemonic string) error {
	words := strings.Fields(strings.ToLower(mnemonic))
	if len(words) != c.words {
		return fmt.Errorf("%w: got %d, want %d", ErrMnemonicLength, len(words), c.words)
	}
	for i, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return &WordError{Position: i, Word: w}
		}
	}
	// Count and dictionary are fine, so the library can only object to the
	// checksum bits.
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return ErrChecksum
	}
	return nil
}

// Validate reports whether the mnemonic passes Check.
func (c *MnemonicCodec) Validate(mnemonic string) bool {
	return c.Check(mnemonic) == nil
}

// NormalizeMnemonic lower-cases a phrase and collapses whitespace to single
// spaces. The normalized form is what seeds are derived from.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// GenerateMnemonic creates a new 12-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	return DefaultCodec().Generate()
}

// ValidateMnemonic checks if a mnemonic is a valid 12-word BIP-39 phrase
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	return DefaultCodec().Validate(mnemonic)
}
