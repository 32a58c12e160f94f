package bytestring

import (
	"cmp"
	"iter"
	"math"
	"slices"
)

// Seq is a finite indexed sequence of comparable items: Bytes (items are
// bytes) and the Ngrams and Blocks views (items are Bytes).
type Seq[T cmp.Ordered] interface {
	Len() int
	At(i int) T
}

// Which selects the index reported for each duplicated pair.
type Which int

const (
	// Second reports the index of the later item of the pair.
	Second Which = iota
	// First reports the index of the earlier item of the pair.
	First
	// Both reports the earlier index followed by the later one.
	Both
)

// Freq counts the occurrences of every item of s.
func Freq[T cmp.Ordered](s Seq[T]) map[T]int {
	freq := make(map[T]int)
	for i := 0; i < s.Len(); i++ {
		freq[s.At(i)]++
	}
	return freq
}

// MostCommon returns the n most frequent items of s, most frequent first.
// Items with the same count keep the order of their first occurrence.
func MostCommon[T cmp.Ordered](s Seq[T], n int) []T {
	freq := make(map[T]int)
	var order []T
	for i := 0; i < s.Len(); i++ {
		item := s.At(i)
		if freq[item] == 0 {
			order = append(order, item)
		}
		freq[item]++
	}

	slices.SortStableFunc(order, func(a, b T) int {
		return cmp.Compare(freq[b], freq[a])
	})
	if n >= 0 && n < len(order) {
		order = order[:n]
	}
	return order
}

// Entropy returns the Shannon entropy, in nats, of the item distribution of s.
func Entropy[T cmp.Ordered](s Seq[T]) float64 {
	total := s.Len()
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range Freq(s) {
		sum += float64(c) * math.Log(float64(c))
	}
	return math.Log(float64(total)) - sum/float64(total)
}

// Duplicates yields the index of every item that is equal to another one
// exactly distance items apart. A distance of 0 means consecutive items.
//
// For the blocks AA BB AA CC CC DD AA DD AA:
//
//	Duplicates(blocks, 0, Second) // 4
//	Duplicates(blocks, 1, Second) // 2 7 8
//	Duplicates(blocks, 5, Both)   // 0 6 2 8
func Duplicates[T cmp.Ordered](s Seq[T], distance int, which Which) iter.Seq[int] {
	return func(yield func(int) bool) {
		step := distance + 1
		for i := 0; i+step < s.Len(); i++ {
			if s.At(i) != s.At(i+step) {
				continue
			}
			if which == First || which == Both {
				if !yield(i) {
					return
				}
			}
			if which == Second || which == Both {
				if !yield(i + step) {
					return
				}
			}
		}
	}
}

// HasDuplicates reports whether Duplicates would yield at least one index.
func HasDuplicates[T cmp.Ordered](s Seq[T], distance int) bool {
	for range Duplicates(s, distance, Second) {
		return true
	}
	return false
}

// Freq counts the occurrences of each n-gram.
func (g Ngrams) Freq() map[Bytes]int { return Freq[Bytes](g) }

// MostCommon returns the n most frequent n-grams.
func (g Ngrams) MostCommon(n int) []Bytes { return MostCommon[Bytes](g, n) }

// Entropy returns the entropy of the n-gram distribution.
func (g Ngrams) Entropy() float64 { return Entropy[Bytes](g) }

// Freq counts the occurrences of each block.
func (bl Blocks) Freq() map[Bytes]int { return Freq[Bytes](bl) }

// MostCommon returns the n most frequent blocks.
func (bl Blocks) MostCommon(n int) []Bytes { return MostCommon[Bytes](bl, n) }

// HasDuplicates reports whether two equal blocks sit distance blocks apart.
func (bl Blocks) HasDuplicates(distance int) bool { return HasDuplicates[Bytes](bl, distance) }

// Duplicates yields the indexes of the duplicated blocks; see Duplicates.
func (bl Blocks) Duplicates(distance int, which Which) iter.Seq[int] {
	return Duplicates[Bytes](bl, distance, which)
}
