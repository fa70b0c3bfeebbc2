// Package session holds one user's wallet state: the current mnemonic, the
// derived accounts and the monotonic account counter.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	klog "github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
)

// Session errors.
var (
	ErrNoMnemonic        = errors.New("no mnemonic loaded")
	ErrNoSuchRecord      = errors.New("no record at that position")
	ErrAccountsExhausted = errors.New("account index space exhausted")
	ErrClosed            = errors.New("session closed")
)

// AccountDeriver turns a mnemonic and account index into a keypair.
// *wallet.Deriver is the production implementation.
type AccountDeriver interface {
	DeriveAccount(mnemonic []byte, account uint32) (*crypto.Keypair, wallet.DerivationPath, error)
}

// Config controls how a session generates mnemonics and derives accounts.
type Config struct {
	CoinType    uint32
	EntropyBits int
	KeyFormat   crypto.KeyFormat
	// Passphrase is the optional BIP-39 passphrase. New copies it.
	Passphrase []byte
	// Entropy overrides the system CSPRNG.
	Entropy wallet.EntropySource
	// Deriver overrides the default wallet.Deriver.
	Deriver AccountDeriver
}

// DefaultConfig returns a Solana configuration with 12-word mnemonics and
// base58 private keys.
func DefaultConfig() Config {
	return Config{
		CoinType:    wallet.CoinTypeSolana,
		EntropyBits: wallet.MnemonicEntropyBits,
		KeyFormat:   crypto.FormatBase58,
	}
}

// Result is delivered by DeriveNextAsync.
type Result struct {
	Record Record
	Err    error
}

// Session is a single wallet session. All methods are safe for concurrent
// use and are applied one at a time.
type Session struct {
	mu sync.Mutex

	codec      *wallet.MnemonicCodec
	deriver    AccountDeriver
	format     crypto.KeyFormat
	passphrase []byte

	mnemonic []byte // normalized phrase, nil until NewMnemonic or Import
	entries  []*entry
	next     uint32 // next account index; never reused for this mnemonic
	closed   bool
}

// New creates an empty session. Call NewMnemonic or Import before deriving.
func New(cfg Config) (*Session, error) {
	bits := cfg.EntropyBits
	if bits == 0 {
		bits = wallet.MnemonicEntropyBits
	}
	codec, err := wallet.NewMnemonicCodec(bits, cfg.Entropy)
	if err != nil {
		return nil, err
	}
	format, err := crypto.ParseKeyFormat(string(cfg.KeyFormat))
	if err != nil {
		return nil, err
	}
	if cfg.CoinType > wallet.MaxAccount {
		return nil, fmt.Errorf("coin type %d exceeds %d", cfg.CoinType, wallet.MaxAccount)
	}

	passphrase := append([]byte(nil), cfg.Passphrase...)
	deriver := cfg.Deriver
	if deriver == nil {
		deriver = &wallet.Deriver{CoinType: cfg.CoinType, Passphrase: passphrase}
	}

	return &Session{
		codec:      codec,
		deriver:    deriver,
		format:     format,
		passphrase: passphrase,
	}, nil
}

// NewMnemonic replaces the current mnemonic with a freshly generated one and
// discards every derived record. Keys derived from the old mnemonic stay
// recoverable only from that phrase.
func (s *Session) NewMnemonic() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	phrase, err := s.codec.Generate()
	if err != nil {
		klog.Session.Error().Err(err).Msg("Mnemonic generation failed")
		return err
	}

	s.reset([]byte(phrase))
	klog.Session.Info().Int("words", s.codec.WordCount()).Msg("New mnemonic generated")
	return nil
}

// Import replaces the current mnemonic with phrase. Any standard BIP-39
// length is accepted. On error the session is left unchanged.
func (s *Session) Import(phrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	normalized := wallet.NormalizeMnemonic(phrase)
	if err := codecFor(normalized, s.codec).Check(normalized); err != nil {
		return err
	}

	s.reset([]byte(normalized))
	klog.Session.Info().Int("words", len(strings.Fields(normalized))).Msg("Mnemonic imported")
	return nil
}

// codecFor picks the codec matching the phrase's word count, falling back to
// def so the length error names the configured size.
func codecFor(phrase string, def *wallet.MnemonicCodec) *wallet.MnemonicCodec {
	n := len(strings.Fields(phrase))
	if n < 12 || n > 24 || n%3 != 0 {
		return def
	}
	c, err := wallet.NewMnemonicCodec(n*32/3, nil)
	if err != nil {
		return def
	}
	return c
}

// reset installs mnemonic and clears all derived state. Caller holds mu.
func (s *Session) reset(mnemonic []byte) {
	wallet.Zero(s.mnemonic)
	for _, e := range s.entries {
		e.zero()
	}
	s.mnemonic = mnemonic
	s.entries = nil
	s.next = 0
}

// DeriveNext derives the account at the current counter, appends it and
// advances the counter. A failed derivation changes nothing, so the next
// call retries the same account index.
func (s *Session) DeriveNext() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Record{}, ErrClosed
	}
	if s.mnemonic == nil {
		return Record{}, ErrNoMnemonic
	}
	if s.next > wallet.MaxAccount {
		return Record{}, ErrAccountsExhausted
	}

	account := s.next
	kp, path, err := s.deriver.DeriveAccount(s.mnemonic, account)
	if err != nil {
		klog.Session.Warn().Err(err).Uint32("account", account).Msg("Derivation failed, counter not advanced")
		return Record{}, fmt.Errorf("derive account %d: %w", account, err)
	}

	e := &entry{account: account, path: path.String(), kp: kp}
	rec, err := e.record(s.format)
	if err != nil {
		e.zero()
		return Record{}, fmt.Errorf("derive account %d: %w", account, err)
	}

	s.entries = append(s.entries, e)
	s.next++

	klog.Session.Debug().
		Uint32("account", account).
		Str("address", rec.Address.String()).
		Int("records", len(s.entries)).
		Msg("Account derived")
	return rec, nil
}

// DeriveNextAsync runs DeriveNext on its own goroutine. The channel receives
// exactly one Result and is then closed.
func (s *Session) DeriveNextAsync() <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		rec, err := s.DeriveNext()
		ch <- Result{Record: rec, Err: err}
	}()
	return ch
}

// Forget removes the record at display position i and zeroes its key.
// Other records keep their order and the counter is not touched.
func (s *Session) Forget(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if i < 0 || i >= len(s.entries) {
		return fmt.Errorf("%w: %d (have %d)", ErrNoSuchRecord, i, len(s.entries))
	}

	e := s.entries[i]
	e.zero()
	copy(s.entries[i:], s.entries[i+1:])
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]

	klog.Session.Debug().Int("position", i).Uint32("account", e.account).Msg("Record forgotten")
	return nil
}

// Records returns the current records in display order.
func (s *Session) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.entries))
	for _, e := range s.entries {
		rec, err := e.record(s.format)
		if err != nil {
			// The format was validated in New.
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Words returns a copy of the current mnemonic's words, or nil if none is
// loaded.
func (s *Session) Words() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mnemonic == nil {
		return nil
	}
	return strings.Fields(string(s.mnemonic))
}

// NextAccount returns the account index the next DeriveNext will use.
func (s *Session) NextAccount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Len returns the number of records currently held.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close zeroes all secret material. Every later call fails with ErrClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.reset(nil)
	wallet.Zero(s.passphrase)
	s.closed = true
	klog.Session.Debug().Msg("Session closed")
}
