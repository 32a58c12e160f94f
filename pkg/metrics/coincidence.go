// Package metrics measures how far a sequence is from being uniformly random.
//
// The functions work over any bytestring.Seq: plain byte strings as well as
// their n-gram and block views.
package metrics

import (
	"cmp"
	"fmt"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// CountCoincidences counts how many items of a and b coincide.
//
// Aligned, only items at the same position are compared:
//
//	AABC
//	EACAB   -> 1
//	 ^
//
// Not aligned, every rotation of b is compared against a, which amounts to
// the sum over each symbol of count_a * count_b ("AABC", "EACAB" -> 6).
func CountCoincidences[T cmp.Ordered](a, b bytestring.Seq[T], aligned bool) int {
	if aligned {
		n := 0
		for i := 0; i < min(a.Len(), b.Len()); i++ {
			if a.At(i) == b.At(i) {
				n++
			}
		}
		return n
	}
	return crossCount(bytestring.Freq(a), bytestring.Freq(b), 0)
}

// SelfCoincidences counts the coincidences of a against its own rotations,
// leaving out the identity: the sum of n*(n-1) over every symbol count n.
//
//	SelfCoincidences("AABC") // 2
func SelfCoincidences[T cmp.Ordered](a bytestring.Seq[T]) int {
	f := bytestring.Freq(a)
	return crossCount(f, f, 1)
}

func crossCount[T comparable](f1, f2 map[T]int, offset int) int {
	small, other := f1, f2
	if len(f2) < len(f1) {
		small, other = f2, f1
	}
	count := 0
	for sym, cnt := range small {
		if o, ok := other[sym]; ok {
			count += (cnt - offset) * o
		}
	}
	return count
}

// IndexOfCoincidence returns the normalized self coincidences of a,
// sum(n*(n-1)) / (N*(N-1)). It is close to 0 for uniformly random data and
// grows as the data gets more biased. Sequences shorter than 2 score 0.
func IndexOfCoincidence[T cmp.Ordered](a bytestring.Seq[T]) float64 {
	n := a.Len()
	if n < 2 {
		return 0
	}
	return float64(SelfCoincidences(a)) / float64(n*(n-1))
}

// IndexOfCoincidenceBetween returns the fraction of positions where a and b
// hold the same item. Both sequences must have the same length.
func IndexOfCoincidenceBetween[T cmp.Ordered](a, b bytestring.Seq[T]) (float64, error) {
	if a.Len() != b.Len() {
		return 0, fmt.Errorf("%w: left sequence has %d items but right sequence has %d",
			bytestring.ErrLengthMismatch, a.Len(), b.Len())
	}
	if a.Len() == 0 {
		return 0, nil
	}
	return float64(CountCoincidences(a, b, true)) / float64(a.Len()), nil
}

// RelativeIC divides an index of coincidence by the expected probability of
// a coincidence, 1/256 for random bytes or 1/26 for random letters. Values
// near 1 look random.
func RelativeIC(ic, expected float64) float64 {
	return ic / expected
}
