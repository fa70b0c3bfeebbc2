package crypto

import (
	"crypto/ed25519"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
)

// SecretSize is the length of the exported secret: 32-byte seed || 32-byte public key.
const SecretSize = ed25519.PrivateKeySize

var errZeroed = errors.New("keypair has been zeroed")

// Signer signs messages with a private key.
type Signer interface {
	// Sign produces an Ed25519 signature over msg.
	Sign(msg []byte) ([]byte, error)
	// PublicKey returns the 32-byte public key.
	PublicKey() []byte
}

// Keypair is an Ed25519 signing keypair.
type Keypair struct {
	priv ed25519.PrivateKey
}

// KeypairFromSeed builds a keypair from a 32-byte signing seed, such as a
// SLIP-0010 Ed25519 private key.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Keypair{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// KeypairFromSecret rebuilds a keypair from its 64-byte secret. The embedded
// public key must match the one the seed produces.
func KeypairFromSecret(secret []byte) (*Keypair, error) {
	if len(secret) != SecretSize {
		return nil, fmt.Errorf("secret must be %d bytes, got %d", SecretSize, len(secret))
	}
	kp, err := KeypairFromSeed(secret[:ed25519.SeedSize])
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(kp.priv[ed25519.SeedSize:], secret[ed25519.SeedSize:]) != 1 {
		kp.Zero()
		return nil, fmt.Errorf("secret public key does not match its seed")
	}
	return kp, nil
}

// Sign produces an Ed25519 signature over msg.
func (kp *Keypair) Sign(msg []byte) ([]byte, error) {
	if kp.zeroed() {
		return nil, errZeroed
	}
	return ed25519.Sign(kp.priv, msg), nil
}

// PublicKey returns a copy of the 32-byte public key, or nil once zeroed.
func (kp *Keypair) PublicKey() []byte {
	if kp.zeroed() {
		return nil
	}
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, kp.priv[ed25519.SeedSize:])
	return pub
}

// Address returns the address for this keypair. A zeroed keypair has the
// zero address.
func (kp *Keypair) Address() types.Address {
	if kp.zeroed() {
		return types.Address{}
	}
	return AddressFromPubKey(kp.priv[ed25519.SeedSize:])
}

// Seed returns a copy of the 32-byte signing seed.
func (kp *Keypair) Seed() []byte {
	if kp.zeroed() {
		return nil
	}
	seed := make([]byte, ed25519.SeedSize)
	copy(seed, kp.priv[:ed25519.SeedSize])
	return seed
}

// Secret returns a copy of the 64-byte secret (seed || public key).
func (kp *Keypair) Secret() []byte {
	if kp.zeroed() {
		return nil
	}
	secret := make([]byte, SecretSize)
	copy(secret, kp.priv)
	return secret
}

func (kp *Keypair) zeroed() bool {
	return len(kp.priv) != ed25519.PrivateKeySize
}

// Zero securely zeroes the private key memory.
func (kp *Keypair) Zero() {
	for i := range kp.priv {
		kp.priv[i] = 0
	}
	kp.priv = nil
}

// VerifySignature checks an Ed25519 signature. Returns false on any malformed
// input.
func VerifySignature(msg, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey, msg, signature)
}
