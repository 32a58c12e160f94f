package attacks

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/candidate"
	"github.com/mahdiidarabi/cryptonita/pkg/scoring"
)

// KeySpace describes the keys BruteForce tries. The zero value is the space
// of all the 1 byte keys.
type KeySpace struct {
	length   int
	explicit bool
	keys     iter.Seq[bytestring.Bytes]
	prior    *candidate.Set[bytestring.Bytes]
}

// KeyLength is the space of all the n byte keys, 256^n of them.
func KeyLength(n int) KeySpace {
	return KeySpace{length: n, explicit: true}
}

// KeyList is the space of the given keys, tried in order.
func KeyList(keys ...bytestring.Bytes) KeySpace {
	return KeySpace{keys: slices.Values(keys), explicit: true}
}

// KeySeq is the space of the keys produced by seq.
func KeySeq(seq iter.Seq[bytestring.Bytes]) KeySpace {
	return KeySpace{keys: seq, explicit: true}
}

// KeyPrior is the space of the candidates of prior. The weight of each key
// multiplies its score.
func KeyPrior(prior *candidate.Set[bytestring.Bytes]) KeySpace {
	return KeySpace{keys: slices.Values(prior.SortedKeys()), prior: prior, explicit: true}
}

func (ks KeySpace) resolve() (iter.Seq[bytestring.Bytes], error) {
	if ks.keys != nil {
		return ks.keys, nil
	}
	n := ks.length
	if !ks.explicit {
		n = 1
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: key length must be positive, got %d", ErrInvalidKeySpace, n)
	}
	return allKeys(n), nil
}

func (ks KeySpace) weight(k bytestring.Bytes) float64 {
	if ks.prior == nil {
		return 1
	}
	return ks.prior.Get(k)
}

// allKeys yields every n byte key in lexicographic order.
func allKeys(n int) iter.Seq[bytestring.Bytes] {
	return func(yield func(bytestring.Bytes) bool) {
		key := bytestring.NewBuffer(n)
		for {
			if !yield(key.Freeze()) {
				return
			}
			i := n - 1
			for ; i >= 0; i-- {
				v := key.At(i) + 1
				key.Set(i, v)
				if v != 0 {
					break
				}
			}
			if i < 0 {
				return
			}
		}
	}
}

// BruteForce decrypts ciphertext, xored with a repeating key, with every key
// of space and scores each plaintext with score. The weight of a key is its
// score times its prior (1 unless space is a KeyPrior); keys weighting
// minScore or less are dropped.
//
// For a bitmap encrypted with the 1 byte key 'X':
//
//	BruteForce("\x1a\x15XXXY", scoring.HasPrefix("BM"), KeySpace{}, 0) // {"X": 1}
func BruteForce(ciphertext bytestring.Bytes, score scoring.Func, space KeySpace, minScore float64) (*candidate.Set[bytestring.Bytes], error) {
	if minScore < 0 || minScore > 1 {
		return nil, fmt.Errorf("%w: minimum score %0.4f is not between 0 and 1", ErrInvalidScore, minScore)
	}
	keys, err := space.resolve()
	if err != nil {
		return nil, err
	}

	out, err := candidate.New[bytestring.Bytes](candidate.WithMinMembership(minScore))
	if err != nil {
		return nil, err
	}

	tried := 0
	for k := range keys {
		if k.Len() == 0 {
			return nil, fmt.Errorf("%w: empty key", ErrInvalidKeySpace)
		}
		s := score(ciphertext.XorStream(k.Keystream()))
		if s < 0 || s > 1 {
			return nil, fmt.Errorf("%w: key %q scored %0.4f", ErrInvalidScore, k, s)
		}
		if err := out.Set(k, s*space.weight(k)); err != nil {
			return nil, err
		}
		tried++
	}

	logx.L().Debug("brute force done", "keys", tried, "candidates", out.Len())
	return out, nil
}

// FreqAttack proposes keys for a ciphertext xored with a 1 byte key.
//
// The top most frequent ciphertext bytes are assumed to be the encryption of
// one of the frequent plaintext bytes in plain, so every pair (c, p)
// proposes the key c ^ p, weighted by the weight of p in plain. Plaintext
// n-grams longer than 1 byte are ignored: there is no sound way yet to merge
// proposals for keys of different lengths.
func FreqAttack(ciphertext bytestring.Bytes, plain *candidate.Set[bytestring.Bytes], top int) (*candidate.Set[bytestring.Bytes], error) {
	keys := candidate.Empty[bytestring.Bytes]()
	for _, n := range []int{1} {
		ngrams, err := ciphertext.Ngrams(n)
		if errors.Is(err, bytestring.ErrTooShort) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, c := range ngrams.MostCommon(top) {
			for p, pr := range plain.All() {
				if p.Len() != n {
					continue
				}
				k, err := c.Xor(p)
				if err != nil {
					return nil, err
				}
				if pr > keys.Get(k) {
					if err := keys.Set(k, pr); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return keys, nil
}

// Lengths returns the key lengths 1..n.
func Lengths(n int) []int {
	out := make([]int, 0, max(n, 0))
	for l := 1; l <= n; l++ {
		out = append(out, l)
	}
	return out
}

// GuessKeyLength scores every candidate length of the repeating key that
// produced ciphertext and keeps the ones scoring above minScore. Lengths the
// ciphertext is too short to judge are skipped.
func GuessKeyLength(ciphertext bytestring.Bytes, lengths []int, score scoring.KeyLengthFunc, minScore float64) (*candidate.Set[int], error) {
	if minScore < 0 || minScore > 1 {
		return nil, fmt.Errorf("%w: minimum score %0.4f is not between 0 and 1", ErrInvalidScore, minScore)
	}
	out, err := candidate.New[int](candidate.WithMinMembership(minScore))
	if err != nil {
		return nil, err
	}

	for _, l := range lengths {
		if l <= 0 {
			return nil, fmt.Errorf("%w: key length must be positive, got %d", ErrInvalidKeySpace, l)
		}
		s, err := score(ciphertext, l)
		if errors.Is(err, bytestring.ErrTooShort) {
			logx.L().Debug("skipping key length", "length", l, "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		if s < 0 || s > 1 {
			return nil, fmt.Errorf("%w: key length %d scored %0.4f", ErrInvalidScore, l, s)
		}
		if err := out.Set(l, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BreakRepeatingXor splits ciphertext in keyLength columns, each one
// encrypted with a single key byte, and brute forces every column on its
// own. The per byte guesses are joined into whole keys keeping the top
// most likely ones.
func BreakRepeatingXor(ciphertext bytestring.Bytes, keyLength int, score scoring.Func, top int) (*candidate.Set[bytestring.Bytes], error) {
	if keyLength <= 0 || keyLength > ciphertext.Len() {
		return nil, fmt.Errorf("%w: can't split %d bytes in %d columns", ErrInvalidKeySpace, ciphertext.Len(), keyLength)
	}
	if top < 1 {
		return nil, fmt.Errorf("%w: at least one key per column must survive, got %d", ErrInvalidKeySpace, top)
	}

	columns := bytestring.TransposeHoles(ciphertext.Blocks(keyLength).Slice())
	return breakColumns(columns, score, top)
}

// breakColumns brute forces every column with a single byte key and joins
// the top per column guesses into whole keys.
func breakColumns(columns []bytestring.Bytes, score scoring.Func, top int) (*candidate.Set[bytestring.Bytes], error) {
	guesses := make([]*candidate.Set[bytestring.Bytes], len(columns))
	for i, col := range columns {
		g, err := BruteForce(col, score, KeyLength(1), 0)
		if err != nil {
			return nil, err
		}
		g.CutOffTop(top)
		guesses[i] = g
	}
	return candidate.Join(guesses, float64(top), candidate.Concat[bytestring.Bytes])
}
