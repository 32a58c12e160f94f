package main

import (
	"fmt"
	"io"

	"github.com/pemistahl/lingua-go"

	"github.com/mahdiidarabi/cryptonita/pkg/attacks"
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/candidate"
	"github.com/mahdiidarabi/cryptonita/pkg/scoring"
)

func runXor(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, verbose := newFlagSet("xor", stderr)
	var (
		in        = fs.String("in", "-", "Ciphertext file (- for stdin)")
		encoding  = fs.String("encoding", "hex", "Input encoding (hex, base64 or raw)")
		keyLength = fs.Int("key-length", 0, "Key length (0 = guess it)")
		maxLength = fs.Int("max-length", 40, "Longest key length to consider when guessing")
		lengths   = fs.Int("lengths", 3, "Number of key lengths to try when guessing")
		top       = fs.Int("top", 3, "Number of keys to keep per key length")
		rerank    = fs.Bool("lingua", false, "Rerank the keys by the confidence that the plaintext is English")
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

	klens := []int{*keyLength}
	if *keyLength <= 0 {
		guess, err := attacks.GuessKeyLength(ct, attacks.Lengths(*maxLength), scoring.KeyLengthByHamming, 0)
		if err != nil {
			return err
		}
		klens = guess.MostLikelyN(*lengths)
		fmt.Fprintf(stdout, "Key lengths: %v\n", guess)
	}

	keys := candidate.Empty[bytestring.Bytes]()
	for _, l := range klens {
		found, err := attacks.BreakRepeatingXor(ct, l, scoring.EnglishLetters, *top)
		if err != nil {
			return fmt.Errorf("key length %d: %w", l, err)
		}
		keys.Update(found)
	}

	if *rerank {
		keys, err = attacks.BruteForce(ct, scoring.Language(scoring.NewEnglishDetector(), lingua.English), attacks.KeyPrior(keys), 0)
		if err != nil {
			return err
		}
	}

	for _, it := range keys.SortedItems() {
		pt := ct.XorStream(it.Key.Keystream())
		fmt.Fprintf(stdout, "[+] key %s (%q) weight %0.4f\n    %s\n", it.Key.Hex(), string(it.Key), it.Weight, printable(pt))
	}
	if keys.Len() == 0 {
		fmt.Fprintln(stdout, "[-] no key found")
	}
	return nil
}
