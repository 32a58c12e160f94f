package main

import (
	"fmt"
	"io"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/keyed"
)

func runMAC(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("mac", stderr)
	var (
		in     = fs.String("in", "-", "Message file (- for stdin)")
		hash   = fs.String("hash", "sha1", fmt.Sprintf("Hash function %v", keyed.Names()))
		key    = fs.String("key", "", "Secret key")
		suffix = fs.Bool("suffix", false, "Compute H(msg || key) instead of H(key || msg)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose, stderr)

	h, err := keyed.ByName(*hash)
	if err != nil {
		return err
	}
	msg, err := readInput(*in, stdin)
	if err != nil {
		return err
	}

	mac := keyed.NewPrefixMAC(h, bytestring.Bytes(*key))
	if *suffix {
		mac = keyed.NewSuffixMAC(h, bytestring.Bytes(*key))
	}
	fmt.Fprintln(stdout, mac.Sign(bytestring.Bytes(msg)).Hex())
	return nil
}
