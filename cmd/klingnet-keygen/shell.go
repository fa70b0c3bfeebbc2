package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/internal/session"
	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
)

// maxBatch caps "derive n" so a typo cannot flood the terminal.
const maxBatch = 1000

var errQuit = errors.New("quit")

// shell is the interactive front end over one session.
type shell struct {
	s        *session.Session
	out      io.Writer
	showKeys bool

	// readSecret reads a line without echo. Nil when stdin is not a
	// terminal; import then takes the phrase from the command line.
	readSecret func(prompt string) ([]byte, error)
}

func newShell(s *session.Session, out io.Writer, showKeys bool) *shell {
	return &shell{s: s, out: out, showKeys: showKeys}
}

// run reads commands from in until quit or EOF.
func (sh *shell) run(in io.Reader) error {
	fmt.Fprintln(sh.out, `Klingnet Keygen. Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}
		err := sh.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
	}
}

// exec runs a single command line.
func (sh *shell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "new", "generate":
		return sh.cmdNew()
	case "import":
		return sh.cmdImport(args)
	case "derive", "next":
		return sh.cmdDerive(args)
	case "forget", "rm":
		return sh.cmdForget(args)
	case "list", "ls":
		sh.cmdList()
		return nil
	case "words", "mnemonic":
		sh.cmdWords()
		return nil
	case "keys":
		return sh.cmdKeys(args)
	case "help", "?":
		sh.usage()
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (sh *shell) cmdNew() error {
	if err := sh.s.NewMnemonic(); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "New mnemonic (write this down!):")
	sh.printWords()
	return nil
}

func (sh *shell) cmdImport(args []string) error {
	var phrase []byte
	switch {
	case len(args) > 0:
		phrase = []byte(strings.Join(args, " "))
	case sh.readSecret != nil:
		p, err := sh.readSecret("Mnemonic: ")
		if err != nil {
			return fmt.Errorf("read mnemonic: %w", err)
		}
		phrase = p
	default:
		return fmt.Errorf("usage: import <word> <word> ...")
	}
	defer wallet.Zero(phrase)

	if err := sh.s.Import(string(phrase)); err != nil {
		var wordErr *wallet.WordError
		switch {
		case errors.As(err, &wordErr):
			return fmt.Errorf("word %d is not in the BIP-39 word list", wordErr.Position+1)
		case errors.Is(err, wallet.ErrChecksum):
			return fmt.Errorf("checksum mismatch: a word is wrong or out of order")
		}
		return err
	}
	fmt.Fprintf(sh.out, "Imported %d-word mnemonic.\n", len(sh.s.Words()))
	return nil
}

func (sh *shell) cmdDerive(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 || v > maxBatch {
			return fmt.Errorf("usage: derive [n], 1 <= n <= %d", maxBatch)
		}
		n = v
	}

	for i := 0; i < n; i++ {
		res := <-sh.s.DeriveNextAsync()
		if res.Err != nil {
			if errors.Is(res.Err, session.ErrNoMnemonic) {
				return fmt.Errorf("no mnemonic yet: run \"new\" or \"import\" first")
			}
			return res.Err
		}
		sh.printRecord(sh.s.Len()-1, res.Record)
	}
	return nil
}

func (sh *shell) cmdForget(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: forget <position>")
	}
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position %q", args[0])
	}
	// Positions are shown 1-based.
	if err := sh.s.Forget(pos - 1); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Forgot #%d. Next account is still %d.\n", pos, sh.s.NextAccount())
	return nil
}

func (sh *shell) cmdList() {
	recs := sh.s.Records()
	if len(recs) == 0 {
		fmt.Fprintln(sh.out, "No addresses derived.")
		return
	}
	for i, r := range recs {
		sh.printRecord(i, r)
	}
}

func (sh *shell) cmdWords() {
	if sh.s.Words() == nil {
		fmt.Fprintln(sh.out, "No mnemonic loaded.")
		return
	}
	sh.printWords()
}

func (sh *shell) cmdKeys(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: keys on|off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "show":
		sh.showKeys = true
	case "off", "hide":
		sh.showKeys = false
	default:
		return fmt.Errorf("usage: keys on|off")
	}
	log.CLI.Debug().Bool("show_keys", sh.showKeys).Msg("Key visibility changed")
	fmt.Fprintf(sh.out, "Private keys %s.\n", map[bool]string{true: "shown", false: "hidden"}[sh.showKeys])
	return nil
}

func (sh *shell) printWords() {
	for i, w := range sh.s.Words() {
		fmt.Fprintf(sh.out, "  %2d. %s\n", i+1, w)
	}
}

func (sh *shell) printRecord(pos int, r session.Record) {
	fmt.Fprintf(sh.out, "#%d  %s  %s  [%s]\n", pos+1, r.Path, r.Address, r.ID)
	if sh.showKeys {
		fmt.Fprintf(sh.out, "    key: %s\n", r.PrivateKey)
	}
}

func (sh *shell) usage() {
	fmt.Fprint(sh.out, `Commands:
  new              Generate a fresh mnemonic (discards all derived keys)
  import [words]   Load an existing mnemonic
  derive [n]       Derive the next n accounts (default 1)
  forget <#>       Remove the address at list position #
  list             Show derived addresses
  words            Show the current mnemonic
  keys on|off      Show or hide private keys
  help             Show this help
  quit             Wipe secrets and exit
`)
}
