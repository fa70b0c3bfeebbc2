// derive_key.go prints the pubkey and address for a private key file.
// The key may be base58 or a [n,n,...] byte array, as printed by
// klingnet-keygen.
// Usage: go run scripts/derive_key.go <keyfile>
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	key, err := crypto.DecodePrivateKey(strings.TrimSpace(string(data)))
	for i := range data {
		data[i] = 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer key.Zero()

	addr := key.Address()
	fmt.Printf("pubkey=%s\n", addr.Hex())
	fmt.Printf("address=%s\n", addr)
}
