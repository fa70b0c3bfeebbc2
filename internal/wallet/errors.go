package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMnemonic is wrapped by every mnemonic validation failure.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrMnemonicLength means the word count does not match the codec.
	ErrMnemonicLength = fmt.Errorf("%w: wrong word count", ErrInvalidMnemonic)
	// ErrUnknownWord means a word is not in the BIP-39 English dictionary.
	ErrUnknownWord = fmt.Errorf("%w: word not in dictionary", ErrInvalidMnemonic)
	// ErrChecksum means the trailing checksum bits do not match the entropy.
	ErrChecksum = fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)

	// ErrEntropySource means secure randomness could not be read.
	ErrEntropySource = errors.New("entropy source failure")
	// ErrEntropySize means the requested entropy size is not a BIP-39 size.
	ErrEntropySize = errors.New("entropy size must be a multiple of 32 in [128, 256]")

	// ErrInvalidDerivation is returned when a derived scalar stays out of range
	// after every fallback round.
	ErrInvalidDerivation = errors.New("invalid derivation")
	// ErrNonHardened is returned when a curve only supports hardened children.
	ErrNonHardened = errors.New("curve supports hardened derivation only")
	// ErrSeedSize is returned for seeds outside the SLIP-0010 range.
	ErrSeedSize = errors.New("seed must be between 16 and 64 bytes")

	// ErrNullDerivationPath is returned for an empty path string.
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrMalformedDerivationPath is returned for a path that cannot be split
	// into segments.
	ErrMalformedDerivationPath = errors.New("malformed derivation path")
)

// WordError reports the first mnemonic word missing from the dictionary.
type WordError struct {
	Position int
	Word     string
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %d %q not in dictionary", e.Position+1, e.Word)
}

// Unwrap lets errors.Is match ErrUnknownWord and ErrInvalidMnemonic.
func (e *WordError) Unwrap() error {
	return ErrUnknownWord
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
