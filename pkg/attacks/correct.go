package attacks

import (
	"fmt"
	"slices"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/candidate"
	"github.com/mahdiidarabi/cryptonita/pkg/scoring"
)

// BreakSharedKeystream attacks many ciphertexts encrypted with the same
// keystream (a reused CTR nonce or a reused one time pad). The ciphertexts
// are cut to a common length, dropping up to the drop fraction of the
// shortest ones, and each column is broken as a single byte xor. The result
// is a set of keystream prefixes of that common length.
func BreakSharedKeystream(ciphertexts []bytestring.Bytes, drop float64, score scoring.Func, top int) (*candidate.Set[bytestring.Bytes], error) {
	if drop < 0 || drop > 1 {
		return nil, fmt.Errorf("%w: drop fraction %0.4f is not between 0 and 1", ErrInsufficientData, drop)
	}
	if top < 1 {
		return nil, fmt.Errorf("%w: at least one key per column must survive, got %d", ErrInvalidKeySpace, top)
	}

	seqs := bytestring.UniformLength(ciphertexts, drop)
	if len(seqs) == 0 || seqs[0].Len() == 0 {
		return nil, fmt.Errorf("%w: no ciphertext survives with a non empty length", ErrInsufficientData)
	}
	columns, err := bytestring.Transpose(seqs)
	if err != nil {
		return nil, err
	}
	logx.L().Debug("breaking shared keystream", "ciphertexts", len(seqs), "length", len(columns))
	return breakColumns(columns, score, top)
}

// Suggester proposes corrections for a key given one of the plaintexts it
// decrypts. It returns one set per plaintext byte; each candidate is the
// byte to xor into the key at that position (0 means keep it).
type Suggester interface {
	Suggest(key, ciphertext, plaintext bytestring.Bytes) ([]*candidate.Set[byte], error)
}

// SuggesterFunc adapts a function to a Suggester.
type SuggesterFunc func(key, ciphertext, plaintext bytestring.Bytes) ([]*candidate.Set[byte], error)

// Suggest calls f.
func (f SuggesterFunc) Suggest(key, ciphertext, plaintext bytestring.Bytes) ([]*candidate.Set[byte], error) {
	return f(key, ciphertext, plaintext)
}

// CorrectKey decrypts the start of every ciphertext with key and asks s for
// corrections. The corrections of each plaintext are normalized and merged
// (union then normalize) into one set per key byte.
//
// Positions no ciphertext says anything about get an empty set.
func CorrectKey(key bytestring.Bytes, ciphertexts []bytestring.Bytes, s Suggester) ([]*candidate.Set[byte], error) {
	if key.Len() == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidKeySpace)
	}
	corrections := make([]*candidate.Set[byte], key.Len())
	for i := range corrections {
		corrections[i] = candidate.Empty[byte]()
	}

	for _, ct := range ciphertexts {
		n := min(ct.Len(), key.Len())
		pt, err := ct[:n].Xor(key[:n])
		if err != nil {
			return nil, err
		}
		suggested, err := s.Suggest(key, ct, pt)
		if err != nil {
			return nil, fmt.Errorf("suggester failed: %w", err)
		}
		for i, sym := range suggested[:min(len(suggested), len(corrections))] {
			sym = sym.Clone()
			sym.Normalize()
			corrections[i].Update(sym)
			corrections[i].Normalize()
		}
	}
	return corrections, nil
}

// ApplyCorrections xors the most likely correction of each position into
// key. Positions with an empty set are left as they are.
func ApplyCorrections(key bytestring.Bytes, corrections []*candidate.Set[byte]) bytestring.Bytes {
	out := key.Mutable()
	for i, c := range corrections[:min(len(corrections), key.Len())] {
		if patch, ok := c.MostLikely(); ok {
			out.Set(i, key.At(i)^patch)
		}
	}
	return out.Freeze()
}

// Speller tells whether a word is correctly written and proposes
// replacements for the ones that are not.
type Speller interface {
	Check(word string) bool
	Suggest(word string) []string
}

// WordSuggester reads the plaintext as whitespace separated words and, for
// every misspelled word, proposes the patches that turn it into one of the
// speller's suggestions of the same length. Whitespace and correctly
// written words propose no change.
type WordSuggester struct {
	Speller Speller
}

// Suggest implements Suggester.
func (w WordSuggester) Suggest(_, _, plaintext bytestring.Bytes) ([]*candidate.Set[byte], error) {
	out := make([]*candidate.Set[byte], 0, plaintext.Len())

	for i := 0; i < plaintext.Len(); {
		if isSpace(plaintext.At(i)) {
			out = append(out, candidate.OfKeys[byte](0))
			i++
			continue
		}
		j := i
		for j < plaintext.Len() && !isSpace(plaintext.At(j)) {
			j++
		}
		word := plaintext[i:j]
		patches := make([]*candidate.Set[byte], len(word))
		for k := range patches {
			patches[k] = candidate.Empty[byte]()
		}

		suggestions := []string{string(word)}
		if !w.Speller.Check(string(word)) {
			suggestions = w.Speller.Suggest(string(word))
		}
		for _, sug := range suggestions {
			if len(sug) != len(word) {
				continue
			}
			for k := range patches {
				// a zero patch still counts: that byte is already right
				patches[k].Add(word[k] ^ sug[k])
			}
		}
		out = append(out, patches...)
		i = j
	}
	return out, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Dictionary is a Speller backed by a word list. Its suggestions are the
// words of the same length that differ in at most MaxChanges bytes.
type Dictionary struct {
	MaxChanges int
	words      map[string]struct{}
	byLength   map[int][]string
}

// NewDictionary returns a Dictionary of words that suggests words one byte
// away.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{
		MaxChanges: 1,
		words:      make(map[string]struct{}, len(words)),
		byLength:   make(map[int][]string),
	}
	for _, w := range words {
		if _, ok := d.words[w]; ok {
			continue
		}
		d.words[w] = struct{}{}
		d.byLength[len(w)] = append(d.byLength[len(w)], w)
	}
	for _, ws := range d.byLength {
		slices.Sort(ws)
	}
	return d
}

// Check implements Speller.
func (d *Dictionary) Check(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Suggest implements Speller.
func (d *Dictionary) Suggest(word string) []string {
	var out []string
	for _, w := range d.byLength[len(word)] {
		changes := 0
		for i := range len(w) {
			if w[i] != word[i] {
				changes++
			}
		}
		if changes <= d.MaxChanges {
			out = append(out, w)
		}
	}
	return out
}
