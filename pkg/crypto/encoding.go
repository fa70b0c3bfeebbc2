package crypto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

// KeyFormat selects how a private key is rendered for display and export.
type KeyFormat string

const (
	// FormatBase58 is the base58 64-byte secret used by browser wallets.
	FormatBase58 KeyFormat = "base58"
	// FormatByteArray is the JSON byte array written by solana-keygen.
	FormatByteArray KeyFormat = "array"
)

// ParseKeyFormat converts a config string to a KeyFormat.
func ParseKeyFormat(s string) (KeyFormat, error) {
	switch KeyFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatBase58, "":
		return FormatBase58, nil
	case FormatByteArray, "bytes", "json":
		return FormatByteArray, nil
	default:
		return "", fmt.Errorf("unknown key format %q (want %s or %s)", s, FormatBase58, FormatByteArray)
	}
}

// EncodePrivateKey renders the full 64-byte secret of kp. Both formats decode
// back to the identical key with DecodePrivateKey.
func EncodePrivateKey(kp *Keypair, format KeyFormat) (string, error) {
	secret := kp.Secret()
	if secret == nil {
		return "", errZeroed
	}
	defer zero(secret)

	switch format {
	case FormatBase58:
		return base58.Encode(secret), nil
	case FormatByteArray:
		var b strings.Builder
		b.Grow(len(secret) * 4)
		b.WriteByte('[')
		for i, v := range secret {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(int(v)))
		}
		b.WriteByte(']')
		return b.String(), nil
	default:
		return "", fmt.Errorf("unknown key format %q", format)
	}
}

// DecodePrivateKey parses a private key in either format. A bare
// comma-separated byte list without brackets is accepted as an array.
func DecodePrivateKey(s string) (*Keypair, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty private key")
	}

	var secret []byte
	if strings.HasPrefix(s, "[") || strings.Contains(s, ",") {
		if !strings.HasPrefix(s, "[") {
			s = "[" + s + "]"
		}
		var values []int
		if err := json.Unmarshal([]byte(s), &values); err != nil {
			return nil, fmt.Errorf("parse byte array: %w", err)
		}
		secret = make([]byte, len(values))
		for i, v := range values {
			if v < 0 || v > 255 {
				zero(secret)
				return nil, fmt.Errorf("byte %d out of range: %d", i, v)
			}
			secret[i] = byte(v)
		}
		for i := range values {
			values[i] = 0
		}
	} else {
		decoded, err := base58.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("parse base58 key: %w", err)
		}
		secret = decoded
	}
	defer zero(secret)

	return KeypairFromSecret(secret)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
