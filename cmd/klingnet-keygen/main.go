// klingnet-keygen is an interactive HD wallet key generator.
//
// Usage:
//
//	klingnet-keygen [--words=24 --key-format=array ...]   Start a session
//	klingnet-keygen --help                                Show help
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Klingon-tech/klingnet-keygen/config"
	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/internal/session"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"golang.org/x/term"
)

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	if flags.Help {
		config.PrintUsage(os.Stdout)
		return
	}
	if flags.Version {
		fmt.Printf("klingnet-keygen version %s\n", config.Version)
		return
	}
	if flags.InitConfig != "" {
		if err := config.WriteDefaultConfig(flags.InitConfig); err != nil {
			fatal("write config: %v", err)
		}
		fmt.Printf("Wrote %s\n", flags.InitConfig)
		return
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	scfg := session.Config{
		CoinType:    cfg.Derivation.CoinType,
		EntropyBits: cfg.Derivation.EntropyBits,
		KeyFormat:   crypto.KeyFormat(cfg.Output.KeyFormat),
	}
	if cfg.Derivation.Passphrase {
		pass, err := readPassword("BIP-39 passphrase (empty for none): ")
		if err != nil {
			fatal("read passphrase: %v", err)
		}
		scfg.Passphrase = pass
		defer zero(pass)
	}

	s, err := session.New(scfg)
	if err != nil {
		fatal("%v", err)
	}
	defer s.Close()

	// Wipe secrets on Ctrl-C as well as on quit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		s.Close()
		fmt.Fprintln(os.Stderr)
		os.Exit(130)
	}()

	log.CLI.Info().
		Uint32("coin_type", cfg.Derivation.CoinType).
		Int("entropy_bits", cfg.Derivation.EntropyBits).
		Str("key_format", cfg.Output.KeyFormat).
		Msg("Session started")

	sh := newShell(s, os.Stdout, cfg.Output.ShowKeys)
	if term.IsTerminal(int(syscall.Stdin)) {
		sh.readSecret = readPassword
	}
	if err := sh.run(os.Stdin); err != nil {
		s.Close()
		fatal("%v", err)
	}
}

// ── Password helper ─────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
