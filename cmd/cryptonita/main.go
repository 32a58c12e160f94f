// Command cryptonita runs the toolkit attacks from the command line.
//
// Usage:
//
//	cryptonita <command> [flags]
//
// Commands:
//
//	xor      break single and repeating key xor
//	kasiski  run the Kasiski examination on a ciphertext
//	mtclone  clone a MT19937 generator from its outputs and predict the next ones
//	nonce    recover ECDSA/EdDSA keys from signatures with related nonces
//	mac      compute a naive keyed hash
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
)

type command struct {
	name  string
	usage string
	run   func(args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

var commands = []command{
	{"xor", "break single and repeating key xor", runXor},
	{"kasiski", "run the Kasiski examination on a ciphertext", runKasiski},
	{"mtclone", "clone a MT19937 generator and predict its next outputs", runMTClone},
	{"nonce", "recover ECDSA/EdDSA keys from signatures with related nonces", runNonce},
	{"mac", "compute a naive keyed hash", runMAC},
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(args[1:], stdin, stdout, stderr)
		}
	}
	usage(stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cryptonita <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

// newFlagSet returns a flag set with the flags every command shares.
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "Log progress to stderr")
	return fs, verbose
}

// setupLogging installs a text logger on stderr when verbose is set.
func setupLogging(verbose bool, stderr io.Writer) {
	if !verbose {
		logx.Set(nil)
		return
	}
	logx.Set(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
