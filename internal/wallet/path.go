package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// HardenedOffset is added to an index to request hardened derivation.
const HardenedOffset uint32 = 0x80000000

// BIP-44 path constants for the Solana family.
// Full path: m/44'/CoinType'/account'/0'
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = HardenedOffset + 44

	// CoinTypeSolana is the SLIP-0044 coin type for Solana.
	CoinTypeSolana uint32 = 501

	// MaxAccount is the largest account index a hardened segment can carry.
	MaxAccount = HardenedOffset - 1
)

// DerivationPath is an ordered list of child indices. Hardened segments carry
// HardenedOffset.
type DerivationPath []uint32

// AccountPath returns m/44'/coinType'/account'/0'.
func AccountPath(coinType, account uint32) (DerivationPath, error) {
	if coinType > MaxAccount {
		return nil, fmt.Errorf("coin type %d exceeds %d", coinType, MaxAccount)
	}
	if account > MaxAccount {
		return nil, fmt.Errorf("account %d exceeds %d", account, MaxAccount)
	}
	return DerivationPath{
		PurposeBIP44,
		HardenedOffset + coinType,
		HardenedOffset + account,
		HardenedOffset,
	}, nil
}

// ParseDerivationPath converts a path string such as m/44'/501'/0'/0' to its
// binary form. Both ' and h mark a hardened segment; decimal and 0x-prefixed
// indices are accepted.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	if strings.TrimSpace(strPath) == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(strPath, "/")
	if strings.TrimSpace(elems[0]) == "m" {
		elems = elems[1:]
	}
	if len(elems) == 0 {
		return nil, ErrMalformedDerivationPath
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		if elem == "" {
			return nil, ErrMalformedDerivationPath
		}

		var offset uint32
		if strings.HasSuffix(elem, "'") || strings.HasSuffix(elem, "h") || strings.HasSuffix(elem, "H") {
			offset = HardenedOffset
			elem = strings.TrimSpace(elem[:len(elem)-1])
		}

		v, err := strconv.ParseUint(elem, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid elem %q in path: %w", elem, err)
		}
		if v > uint64(MaxAccount) {
			if offset != 0 {
				return nil, fmt.Errorf("elem %d must be in hardened range [0, %d]", v, MaxAccount)
			}
			return nil, fmt.Errorf("elem %d exceeds %d, mark it hardened instead", v, MaxAccount)
		}
		path = append(path, offset+uint32(v))
	}
	return path, nil
}

// IsHardened reports whether every segment is hardened.
func (path DerivationPath) IsHardened() bool {
	for _, idx := range path {
		if idx < HardenedOffset {
			return false
		}
	}
	return true
}

// String converts a binary derivation path to its canonical representation.
func (path DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range path {
		b.WriteByte('/')
		if idx >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}
