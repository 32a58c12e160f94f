package bytestring

import (
	"fmt"
	"iter"
)

// Keystream is the infinite cyclic projection of a finite sequence.
// It has no length; indexing wraps modulo the length of its base.
type Keystream struct {
	base Bytes
}

// NewKeystream returns the keystream that repeats base forever.
// It panics if base is empty.
func NewKeystream(base Bytes) Keystream {
	if len(base) == 0 {
		panic("bytestring: keystream of an empty byte string")
	}
	return Keystream{base: base}
}

// Base returns the finite sequence the keystream repeats.
func (k Keystream) Base() Bytes { return k.base }

// At returns the byte at position i (negative positions wrap too).
func (k Keystream) At(i int) byte {
	n := len(k.base)
	return k.base[((i%n)+n)%n]
}

// Take returns the first n bytes of the keystream.
func (k Keystream) Take(n int) Bytes {
	out := make([]byte, n)
	for i := range out {
		out[i] = k.At(i)
	}
	return Bytes(out)
}

// Xor xors the keystream against b, truncating to len(b).
func (k Keystream) Xor(b Bytes) Bytes {
	out := make([]byte, len(b))
	n := len(k.base)
	for i := range out {
		out[i] = b[i] ^ k.base[i%n]
	}
	return Bytes(out)
}

// All iterates the keystream forever; the caller must stop.
func (k Keystream) All() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := 0; ; i++ {
			if !yield(k.base[i%len(k.base)]) {
				return
			}
		}
	}
}

// Ngrams is the view of all the overlapping n-grams of a sequence.
type Ngrams struct {
	base Bytes
	n    int
}

// NewNgrams returns the n-grams view of base. It fails with ErrTooShort when
// base can't hold even a single n-gram.
func NewNgrams(base Bytes, n int) (Ngrams, error) {
	if n <= 0 {
		panic(fmt.Sprintf("bytestring: invalid n-gram length %d", n))
	}
	if len(base) < n {
		return Ngrams{}, fmt.Errorf("%w: the byte string has only %d bytes, it is not possible to create even a single ngram of length %d",
			ErrTooShort, len(base), n)
	}
	return Ngrams{base: base, n: n}, nil
}

// N returns the length of each n-gram.
func (g Ngrams) N() int { return g.n }

// Len returns the number of n-grams.
func (g Ngrams) Len() int {
	if g.n == 0 {
		return 0
	}
	return len(g.base) - g.n + 1
}

// At returns the n-gram starting at position i.
func (g Ngrams) At(i int) Bytes { return g.base[i : i+g.n] }

// All iterates the n-grams in order.
func (g Ngrams) All() iter.Seq[Bytes] { return all[Bytes](g) }

// Blocks is the view of the non-overlapping n-byte blocks of a sequence.
// The last block is shorter when the length is not a multiple of n.
type Blocks struct {
	base Bytes
	n    int
}

// NewBlocks returns the n-blocks view of base. It panics if n is not positive.
func NewBlocks(base Bytes, n int) Blocks {
	if n <= 0 {
		panic(fmt.Sprintf("bytestring: invalid block size %d", n))
	}
	return Blocks{base: base, n: n}
}

// N returns the block size.
func (bl Blocks) N() int { return bl.n }

// Len returns the number of blocks, ceil(len(base)/n).
func (bl Blocks) Len() int {
	if bl.n == 0 {
		return 0
	}
	return (len(bl.base) + bl.n - 1) / bl.n
}

// At returns the i-th block.
func (bl Blocks) At(i int) Bytes {
	end := min((i+1)*bl.n, len(bl.base))
	return bl.base[i*bl.n : end]
}

// All iterates the blocks in order.
func (bl Blocks) All() iter.Seq[Bytes] { return all[Bytes](bl) }

// Slice returns the blocks as a slice.
func (bl Blocks) Slice() []Bytes {
	out := make([]Bytes, bl.Len())
	for i := range out {
		out[i] = bl.At(i)
	}
	return out
}

func all[T comparable](s interface {
	Len() int
	At(int) T
}) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(s.At(i)) {
				return
			}
		}
	}
}
