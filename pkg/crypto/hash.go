// Package crypto provides the key material primitives for the key generator.
package crypto

import (
	"encoding/hex"

	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
	"github.com/zeebo/blake3"
)

// FingerprintSize is the number of hash bytes kept in a Fingerprint.
const FingerprintSize = 8

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// AddressFromPubKey derives an address from a raw Ed25519 public key.
// The address is the key itself.
func AddressFromPubKey(pubKey []byte) types.Address {
	var addr types.Address
	copy(addr[:], pubKey)
	return addr
}

// Fingerprint returns a short, stable hex identifier for a public key.
// It is for labelling only and carries no security weight.
func Fingerprint(pubKey []byte) string {
	h := Hash(pubKey)
	return hex.EncodeToString(h[:FingerprintSize])
}
