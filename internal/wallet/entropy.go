package wallet

import (
	"crypto/rand"
	"fmt"
	"io"
)

// EntropySource produces the random bits a mnemonic is built from.
type EntropySource interface {
	// Entropy returns bits/8 random bytes or an error wrapping ErrEntropySource.
	Entropy(bits int) ([]byte, error)
}

// SystemEntropy reads from the operating system CSPRNG.
var SystemEntropy EntropySource = ReaderEntropy{Reader: rand.Reader}

// ReaderEntropy draws entropy from an io.Reader. A short read is a failure;
// there is no fallback to a weaker source.
type ReaderEntropy struct {
	Reader io.Reader
}

// Entropy implements EntropySource.
func (r ReaderEntropy) Entropy(bits int) ([]byte, error) {
	if err := checkEntropyBits(bits); err != nil {
		return nil, err
	}
	buf := make([]byte, bits/8)
	if _, err := io.ReadFull(r.Reader, buf); err != nil {
		Zero(buf)
		return nil, fmt.Errorf("%w: %v", ErrEntropySource, err)
	}
	return buf, nil
}

func checkEntropyBits(bits int) error {
	if bits < 128 || bits > 256 || bits%32 != 0 {
		return fmt.Errorf("%w: got %d", ErrEntropySize, bits)
	}
	return nil
}
