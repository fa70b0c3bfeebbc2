package wallet

import (
	"crypto/ed25519"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Curve is a SLIP-0010 curve: it fixes the master HMAC key and how I_L
// becomes a private scalar.
type Curve interface {
	// Name returns the SLIP-0010 curve name.
	Name() string
	// PublicKey returns the serialized public key for a 32-byte private key.
	PublicKey(priv []byte) ([]byte, error)

	seedKey() []byte
	hardenedOnly() bool
	// masterKey turns I_L into a master scalar; false asks for another round.
	masterKey(il []byte) ([32]byte, bool)
	// childKey turns I_L and the parent scalar into a child scalar; false
	// asks for another round.
	childKey(il, parent []byte) ([32]byte, bool)
}

// Supported curves.
var (
	Ed25519   Curve = ed25519Curve{}
	Secp256k1 Curve = secp256k1Curve{}
)

// ed25519Curve accepts every I_L: the 32 bytes are an Ed25519 signing seed,
// and clamping happens inside key construction.
type ed25519Curve struct{}

func (ed25519Curve) Name() string       { return "ed25519" }
func (ed25519Curve) seedKey() []byte    { return []byte("ed25519 seed") }
func (ed25519Curve) hardenedOnly() bool { return true }

func (ed25519Curve) masterKey(il []byte) ([32]byte, bool) {
	var k [32]byte
	copy(k[:], il)
	return k, true
}

func (ed25519Curve) childKey(il, _ []byte) ([32]byte, bool) {
	var k [32]byte
	copy(k[:], il)
	return k, true
}

// PublicKey returns the raw 32-byte Ed25519 public key.
func (ed25519Curve) PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(priv))
	}
	sk := ed25519.NewKeyFromSeed(priv)
	defer Zero(sk)
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, sk[ed25519.SeedSize:])
	return pub, nil
}

// secp256k1Curve rejects I_L >= n and zero results, which is where the
// SLIP-0010 retry rules come into play.
type secp256k1Curve struct{}

func (secp256k1Curve) Name() string       { return "secp256k1" }
func (secp256k1Curve) seedKey() []byte    { return []byte("Bitcoin seed") }
func (secp256k1Curve) hardenedOnly() bool { return false }

func (secp256k1Curve) masterKey(il []byte) ([32]byte, bool) {
	var s secp256k1.ModNScalar
	defer s.Zero()
	if overflow := s.SetByteSlice(il); overflow || s.IsZero() {
		return [32]byte{}, false
	}
	return s.Bytes(), true
}

func (secp256k1Curve) childKey(il, parent []byte) ([32]byte, bool) {
	var s, p secp256k1.ModNScalar
	defer s.Zero()
	defer p.Zero()
	if overflow := s.SetByteSlice(il); overflow {
		return [32]byte{}, false
	}
	p.SetByteSlice(parent)
	s.Add(&p)
	if s.IsZero() {
		return [32]byte{}, false
	}
	return s.Bytes(), true
}

// PublicKey returns the 33-byte compressed secp256k1 public key.
func (secp256k1Curve) PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != 32 {
		return nil, fmt.Errorf("secp256k1 key must be 32 bytes, got %d", len(priv))
	}
	key := secp256k1.PrivKeyFromBytes(priv)
	defer key.Zero()
	return key.PubKey().SerializeCompressed(), nil
}
