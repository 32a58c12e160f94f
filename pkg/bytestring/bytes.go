package bytestring

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLengthMismatch is returned when two operands must have the same length but don't.
	ErrLengthMismatch = errors.New("mismatch lengths")

	// ErrTooShort is returned when a sequence is too short for the requested view.
	ErrTooShort = errors.New("byte string too short")
)

// Bytes is an immutable sequence of bytes.
//
// Slicing a Bytes value (b[i:j]) returns another Bytes value; since the
// underlying memory can never be modified this is equivalent to a copy.
type Bytes string

// New returns a Bytes holding a copy of b.
func New(b []byte) Bytes {
	return Bytes(b)
}

// Of returns a Bytes made of the given byte values.
func Of(vals ...byte) Bytes {
	return Bytes(vals)
}

// Repeat returns a sequence of n bytes of value v. A non-positive n yields
// an empty sequence.
func Repeat(v byte, n int) Bytes {
	if n <= 0 {
		return ""
	}
	return Bytes(bytes.Repeat([]byte{v}, n))
}

// Join concatenates the given sequences into a new one.
func Join(parts ...Bytes) Bytes {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(string(p))
	}
	return Bytes(sb.String())
}

// Len returns the number of bytes.
func (b Bytes) Len() int { return len(b) }

// At returns the byte at position i.
func (b Bytes) At(i int) byte { return b[i] }

// Bytes returns a copy of the content as a byte slice.
func (b Bytes) Bytes() []byte { return []byte(b) }

// Repeat returns b repeated n times. A non-positive n yields an empty sequence.
func (b Bytes) Repeat(n int) Bytes {
	if n <= 0 {
		return ""
	}
	return Bytes(strings.Repeat(string(b), n))
}

// Xor computes the byte-wise xor of b and other. Both must have the same length.
func (b Bytes) Xor(other Bytes) (Bytes, error) {
	if err := sameLength(len(b), len(other)); err != nil {
		return "", err
	}
	out := make([]byte, len(b))
	for i := range out {
		out[i] = b[i] ^ other[i]
	}
	return Bytes(out), nil
}

// XorStream xors b against the keystream k. The result has the length of b.
func (b Bytes) XorStream(k Keystream) Bytes {
	return k.Xor(b)
}

// ShiftLeft pushes other into b from the right: the first len(other) bytes of
// b are dropped and other is appended, so the length does not change. If
// other is longer than b only its last len(b) bytes are kept.
//
//	Bytes("ABCD").ShiftLeft("E")       // "BCDE"
//	Bytes("ABCD").ShiftLeft("EFGHIJK") // "HIJK"
func (b Bytes) ShiftLeft(other Bytes) Bytes {
	n := len(other)
	switch {
	case n == 0:
		return b
	case n > len(b):
		return other[n-len(b):]
	default:
		return b[n:] + other
	}
}

// HammingDistance returns the number of differing bits between b and other.
func (b Bytes) HammingDistance(other Bytes) (int, error) {
	x, err := b.Xor(other)
	if err != nil {
		return 0, err
	}
	return x.CountOnes(), nil
}

// CountOnes returns the number of bits set to 1.
func (b Bytes) CountOnes() int {
	n := 0
	for i := 0; i < len(b); i++ {
		n += int(onesInByte[b[i]])
	}
	return n
}

// Mutable returns a mutable copy of b.
func (b Bytes) Mutable() *Buffer {
	return &Buffer{buf: []byte(b)}
}

// Keystream returns the infinite cyclic projection of b.
// It panics if b is empty.
func (b Bytes) Keystream() Keystream {
	return NewKeystream(b)
}

// Ngrams returns the overlapping n-grams view of b.
func (b Bytes) Ngrams(n int) (Ngrams, error) {
	return NewNgrams(b, n)
}

// Blocks returns the non-overlapping n-blocks view of b.
func (b Bytes) Blocks(n int) Blocks {
	return NewBlocks(b, n)
}

// Freq counts the occurrences of each byte value.
func (b Bytes) Freq() map[byte]int { return Freq[byte](b) }

// MostCommon returns the n most frequent byte values.
func (b Bytes) MostCommon(n int) []byte { return MostCommon[byte](b, n) }

// Entropy returns the Shannon entropy (natural log) of the byte distribution.
func (b Bytes) Entropy() float64 { return Entropy[byte](b) }

// HasDuplicates reports whether two equal bytes sit distance positions apart
// (0 means consecutive).
func (b Bytes) HasDuplicates(distance int) bool { return HasDuplicates[byte](b, distance) }

func sameLength(left, right int) error {
	if left != right {
		return fmt.Errorf("%w: left string has %d bytes but right string has %d", ErrLengthMismatch, left, right)
	}
	return nil
}

// onesInByte maps every byte value to its population count.
var onesInByte = func() (t [256]uint8) {
	for i := 1; i < len(t); i++ {
		t[i] = uint8(i&1) + t[i>>1]
	}
	return t
}()
