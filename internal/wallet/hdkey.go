package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

// maxDerivationRounds bounds the SLIP-0010 retry loop. Each round fails with
// probability below 2^-127 on secp256k1 and never on Ed25519.
const maxDerivationRounds = 256

// HDKey is one node of a SLIP-0010 tree: a private scalar plus chain code.
type HDKey struct {
	curve     Curve
	key       [32]byte
	chainCode [32]byte
	depth     uint8
	index     uint32
}

// NewMasterKey creates the master node for seed on the given curve.
func NewMasterKey(seed []byte, curve Curve) (*HDKey, error) {
	if len(seed) < 16 || len(seed) > SeedSize {
		return nil, fmt.Errorf("%w: got %d", ErrSeedSize, len(seed))
	}

	data := seed
	for round := 0; round < maxDerivationRounds; round++ {
		i := hmacSHA512(curve.seedKey(), data)
		if round > 0 {
			Zero(data)
		}
		if key, ok := curve.masterKey(i[:32]); ok {
			k := &HDKey{curve: curve, key: key}
			copy(k.chainCode[:], i[32:])
			Zero(key[:])
			Zero(i)
			return k, nil
		}
		// SLIP-0010: an invalid master scalar re-hashes with S := I.
		data = i
	}
	Zero(data)
	return nil, fmt.Errorf("master key: %w", ErrInvalidDerivation)
}

// DeriveChild derives the child at index. Add HardenedOffset to the index for
// hardened derivation; Ed25519 accepts nothing else.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	hardened := index >= HardenedOffset
	if !hardened && k.curve.hardenedOnly() {
		return nil, fmt.Errorf("derive child %d: %w", index, ErrNonHardened)
	}

	var ser [4]byte
	binary.BigEndian.PutUint32(ser[:], index)

	data := make([]byte, 0, 37)
	if hardened {
		data = append(data, 0x00)
		data = append(data, k.key[:]...)
	} else {
		pub, err := k.curve.PublicKey(k.key[:])
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", index, err)
		}
		data = append(data, pub...)
	}
	data = append(data, ser[:]...)

	for round := 0; round < maxDerivationRounds; round++ {
		i := hmacSHA512(k.chainCode[:], data)
		Zero(data)
		if key, ok := k.curve.childKey(i[:32], k.key[:]); ok {
			child := &HDKey{
				curve: k.curve,
				key:   key,
				depth: k.depth + 1,
				index: index,
			}
			copy(child.chainCode[:], i[32:])
			Zero(key[:])
			Zero(i)
			return child, nil
		}
		// SLIP-0010: retry with 0x01 || I_R || ser32(i).
		data = data[:0]
		data = append(data, 0x01)
		data = append(data, i[32:]...)
		data = append(data, ser[:]...)
		Zero(i)
		logger().Debug().Uint32("index", index).Int("round", round+1).Msg("derived scalar out of range, retrying")
	}
	return nil, fmt.Errorf("derive child %d: %w", index, ErrInvalidDerivation)
}

// DerivePath derives a key along path, left to right. Intermediate nodes are
// zeroed as soon as their child exists; k itself is left untouched.
func (k *HDKey) DerivePath(path DerivationPath) (*HDKey, error) {
	current := k
	for _, idx := range path {
		child, err := current.DeriveChild(idx)
		if current != k {
			current.Zero()
		}
		if err != nil {
			return nil, err
		}
		current = child
	}
	if current == k {
		return k.clone(), nil
	}
	return current, nil
}

// DerivePath builds the master node for seed and folds path over it.
func DerivePath(seed []byte, path DerivationPath, curve Curve) (*HDKey, error) {
	master, err := NewMasterKey(seed, curve)
	if err != nil {
		return nil, err
	}
	defer master.Zero()
	return master.DerivePath(path)
}

// PrivateKeyBytes returns a copy of the 32-byte private scalar.
func (k *HDKey) PrivateKeyBytes() []byte {
	b := make([]byte, 32)
	copy(b, k.key[:])
	return b
}

// ChainCode returns a copy of the 32-byte chain code.
func (k *HDKey) ChainCode() []byte {
	b := make([]byte, 32)
	copy(b, k.chainCode[:])
	return b
}

// PublicKeyBytes returns the curve's public key for this node.
func (k *HDKey) PublicKeyBytes() ([]byte, error) {
	return k.curve.PublicKey(k.key[:])
}

// Keypair builds the Ed25519 signing keypair for this node.
func (k *HDKey) Keypair() (*crypto.Keypair, error) {
	if k.curve != Ed25519 {
		return nil, fmt.Errorf("keypair requires ed25519 node, have %s", k.curve.Name())
	}
	return crypto.KeypairFromSeed(k.key[:])
}

// Curve returns the curve this node belongs to.
func (k *HDKey) Curve() Curve {
	return k.curve
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.depth
}

// Index returns the child index this node was derived at (0 for master).
func (k *HDKey) Index() uint32 {
	return k.index
}

// Zero clears the private scalar and chain code.
func (k *HDKey) Zero() {
	Zero(k.key[:])
	Zero(k.chainCode[:])
}

func (k *HDKey) clone() *HDKey {
	c := *k
	return &c
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
