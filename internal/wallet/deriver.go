package wallet

import (
	"fmt"

	klog "github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"github.com/rs/zerolog"
)

func logger() *zerolog.Logger {
	return &klog.Wallet
}

// Deriver runs the mnemonic → seed → path → keypair pipeline for one account
// of a BIP-44 coin type.
type Deriver struct {
	// CoinType is the SLIP-0044 coin type placed at m/44'/CoinType'.
	CoinType uint32
	// Passphrase is the optional BIP-39 passphrase. It is read, never modified.
	Passphrase []byte
}

// NewDeriver returns a Deriver for coinType with an empty passphrase.
func NewDeriver(coinType uint32) *Deriver {
	return &Deriver{CoinType: coinType}
}

// DeriveAccount derives the Ed25519 keypair at m/44'/CoinType'/account'/0'.
// The seed and every intermediate node are zeroed before returning; the caller
// owns the keypair and should Zero it when done.
func (d *Deriver) DeriveAccount(mnemonic []byte, account uint32) (*crypto.Keypair, DerivationPath, error) {
	defer klog.Benchmark("derive_account")()

	path, err := AccountPath(d.CoinType, account)
	if err != nil {
		return nil, nil, err
	}

	seed, err := SeedFromMnemonicBytes(mnemonic, d.Passphrase)
	if err != nil {
		return nil, nil, err
	}
	defer Zero(seed)

	node, err := DerivePath(seed, path, Ed25519)
	if err != nil {
		return nil, nil, fmt.Errorf("derive %s: %w", path, err)
	}
	defer node.Zero()

	kp, err := node.Keypair()
	if err != nil {
		return nil, nil, fmt.Errorf("derive %s: %w", path, err)
	}

	logger().Debug().
		Uint32("account", account).
		Str("path", path.String()).
		Str("address", kp.Address().String()).
		Msg("Derived account")
	return kp, path, nil
}
