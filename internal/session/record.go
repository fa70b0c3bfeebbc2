package session

import (
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
)

// Record is one derived account as shown to the presentation layer.
type Record struct {
	// ID is a short fingerprint of the public key. It stays stable when
	// Forget shifts display positions.
	ID         string        `json:"id"`
	Account    uint32        `json:"account"`
	Path       string        `json:"path"`
	Address    types.Address `json:"address"`
	PrivateKey string        `json:"privateKey"`
}

// entry is a record plus the keypair it was rendered from.
type entry struct {
	account uint32
	path    string
	kp      *crypto.Keypair
}

func (e *entry) record(format crypto.KeyFormat) (Record, error) {
	priv, err := crypto.EncodePrivateKey(e.kp, format)
	if err != nil {
		return Record{}, err
	}
	pub := e.kp.PublicKey()
	return Record{
		ID:         crypto.Fingerprint(pub),
		Account:    e.account,
		Path:       e.path,
		Address:    crypto.AddressFromPubKey(pub),
		PrivateKey: priv,
	}, nil
}

func (e *entry) zero() {
	if e.kp != nil {
		e.kp.Zero()
		e.kp = nil
	}
}
