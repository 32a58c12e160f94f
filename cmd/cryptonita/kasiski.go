package main

import (
	"fmt"
	"io"

	"github.com/mahdiidarabi/cryptonita/pkg/kasiski"
)

func runKasiski(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("kasiski", stderr)
	var (
		in       = fs.String("in", "-", "Ciphertext file (- for stdin)")
		encoding = fs.String("encoding", "raw", "Input encoding (hex, base64 or raw)")
		top      = fs.Int("top", 10, "Number of deltas to show")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose, stderr)

	data, err := readInput(*in, stdin)
	if err != nil {
		return err
	}
	ct, err := decode(data, *encoding)
	if err != nil {
		return err
	}

	report := kasiski.Examine(ct)
	if len(report.Ranked) == 0 {
		fmt.Fprintln(stdout, "[-] no repeated 3-grams")
		return nil
	}
	for n, h := range report.Histograms {
		fmt.Fprintf(stdout, "%d-grams: %d distinct deltas\n", n+3, len(h))
	}
	for _, rd := range report.Ranked[:min(max(*top, 0), len(report.Ranked))] {
		fmt.Fprintf(stdout, "delta %d score %d (%d-grams)\n", rd.Delta, rd.Score, rd.Ordinal+2)
	}
	lengths, err := report.KeyLengths()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Key lengths: %v\n", lengths)
	return nil
}
