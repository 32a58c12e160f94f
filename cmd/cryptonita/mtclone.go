package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/mahdiidarabi/cryptonita/pkg/attacks"
)

func runMTClone(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("mtclone", stderr)
	var (
		in   = fs.String("in", "-", "File with one decimal output per line (- for stdin)")
		next = fs.Int("next", 10, "Number of outputs to predict")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(*verbose, stderr)

	data, err := readInput(*in, stdin)
	if err != nil {
		return err
	}
	var outputs []uint32
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 10, 32)
		if err != nil {
			return fmt.Errorf("output %d: %w", len(outputs), err)
		}
		outputs = append(outputs, uint32(v))
	}
	if err := sc.Err(); err != nil {
		return err
	}

	clone, err := attacks.CloneMT19937(outputs)
	if err != nil {
		return err
	}
	for i := 0; i < *next; i++ {
		fmt.Fprintln(stdout, clone.Uint32())
	}
	return nil
}
