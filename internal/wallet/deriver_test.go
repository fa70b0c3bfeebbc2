package wallet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

func TestDeriveAccount_GoldenVector(t *testing.T) {
	d := NewDeriver(CoinTypeSolana)

	kp, path, err := d.DeriveAccount([]byte(testMnemonic), 0)
	if err != nil {
		t.Fatalf("DeriveAccount() error: %v", err)
	}

	if path.String() != "m/44'/501'/0'/0'" {
		t.Errorf("path = %s, want m/44'/501'/0'/0'", path)
	}
	if got := kp.Address().String(); got != "HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk" {
		t.Errorf("address = %s, want HAgk14JpMQLgt6rVgv7cBQFJWFto5Dqxi472uT3DKpqk", got)
	}
}

func TestDeriveAccount_MatchesManualPipeline(t *testing.T) {
	d := NewDeriver(CoinTypeSolana)
	kp, _, err := d.DeriveAccount([]byte(testMnemonic), 3)
	if err != nil {
		t.Fatalf("DeriveAccount() error: %v", err)
	}

	seed, _ := SeedFromMnemonic(testMnemonic, "")
	path, _ := ParseDerivationPath("m/44'/501'/3'/0'")
	node, err := DerivePath(seed, path, Ed25519)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	want, err := crypto.KeypairFromSeed(node.PrivateKeyBytes())
	if err != nil {
		t.Fatalf("KeypairFromSeed() error: %v", err)
	}

	if !bytes.Equal(kp.Secret(), want.Secret()) {
		t.Error("DeriveAccount should match the step-by-step pipeline")
	}
}

func TestDeriveAccount_DistinctAccounts(t *testing.T) {
	d := NewDeriver(CoinTypeSolana)
	seen := make(map[string]uint32)

	for account := uint32(0); account < 16; account++ {
		kp, _, err := d.DeriveAccount([]byte(testMnemonic), account)
		if err != nil {
			t.Fatalf("DeriveAccount(%d) error: %v", account, err)
		}
		addr := kp.Address().String()
		if prev, ok := seen[addr]; ok {
			t.Fatalf("accounts %d and %d share address %s", prev, account, addr)
		}
		seen[addr] = account
	}
}

func TestDeriveAccount_Passphrase(t *testing.T) {
	plain, _, _ := NewDeriver(CoinTypeSolana).DeriveAccount([]byte(testMnemonic), 0)

	d := &Deriver{CoinType: CoinTypeSolana, Passphrase: []byte("TREZOR")}
	withPass, _, err := d.DeriveAccount([]byte(testMnemonic), 0)
	if err != nil {
		t.Fatalf("DeriveAccount() error: %v", err)
	}
	if plain.Address() == withPass.Address() {
		t.Error("passphrase should change the derived address")
	}
}

func TestDeriveAccount_InvalidMnemonic(t *testing.T) {
	kp, path, err := NewDeriver(CoinTypeSolana).DeriveAccount([]byte("abandon abandon"), 0)
	if !errors.Is(err, ErrInvalidMnemonic) {
		t.Errorf("DeriveAccount() error = %v, want ErrInvalidMnemonic", err)
	}
	if kp != nil || path != nil {
		t.Error("failed derivation should return no keypair or path")
	}
}

func TestDeriveAccount_AccountOutOfRange(t *testing.T) {
	if _, _, err := NewDeriver(CoinTypeSolana).DeriveAccount([]byte(testMnemonic), MaxAccount+1); err == nil {
		t.Error("account beyond the hardened range should fail")
	}
}
