// Package kasiski implements the Kasiski examination of a ciphertext
// suspected of being encrypted with a repeating key.
//
// Repeated n-grams in such a ciphertext are often the same plaintext
// encrypted with the same part of the key, so the distances (deltas)
// between them tend to be multiples of the key length.
package kasiski

import (
	"cmp"
	"slices"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/candidate"
)

// Position is the position of a repeated n-gram. Positions with the same
// ID hold the same n-gram; IDs start at 1.
type Position struct {
	Pos int
	ID  int
}

// RepeatedPositions returns, sorted by position, every position of s where
// an n-gram that appears more than once starts.
//
//	RepeatedPositions("ABCDBCDABCDBC", 3)
//	// (0,1) (1,2) (2,3) (3,4) (4,2) (7,1) (8,2) (9,3) (10,4)
func RepeatedPositions(s bytestring.Bytes, n int) []Position {
	ngrams, err := s.Ngrams(n)
	if err != nil {
		return nil
	}

	ids := make(map[bytestring.Bytes]int)
	counts := []int{0}
	all := make([]Position, 0, ngrams.Len())
	for pos := 0; pos < ngrams.Len(); pos++ {
		g := ngrams.At(pos)
		id, ok := ids[g]
		if !ok {
			id = len(counts)
			ids[g] = id
			counts = append(counts, 0)
		}
		counts[id]++
		all = append(all, Position{Pos: pos, ID: id})
	}
	return slices.DeleteFunc(all, func(p Position) bool { return counts[p.ID] < 2 })
}

// MergeOverlapping turns the repeated positions of n-grams into the
// repeated positions of (n+1)-grams.
//
// Two n-grams at consecutive positions p and p+1 overlap in n-1 bytes, so
// there is an (n+1)-gram at p, identified by the pair of ids. That (n+1)-gram
// may still be unique, so the ones seen only once are dropped. A position
// without a follower can't start an (n+1)-gram at all. The input is not
// modified.
func MergeOverlapping(ps []Position) []Position {
	type pair struct{ a, b int }
	ids := make(map[pair]int)
	counts := []int{0}

	out := make([]Position, 0, len(ps))
	for i := 0; i+1 < len(ps); i++ {
		cur, next := ps[i], ps[i+1]
		if cur.Pos+1 != next.Pos {
			continue
		}
		key := pair{cur.ID, next.ID}
		id, ok := ids[key]
		if !ok {
			id = len(counts)
			ids[key] = id
			counts = append(counts, 0)
		}
		counts[id]++
		out = append(out, Position{Pos: cur.Pos, ID: id})
	}
	return slices.DeleteFunc(out, func(p Position) bool { return counts[p.ID] < 2 })
}

// Deltas returns the differences between consecutive positions.
func Deltas(positions []int) []int {
	if len(positions) < 2 {
		return nil
	}
	out := make([]int, len(positions)-1)
	for i := range out {
		out[i] = positions[i+1] - positions[i]
	}
	return out
}

// Histogram counts how many times each delta was seen.
type Histogram map[int]int

// FrequencyOfDeltas returns one delta histogram per n-gram length, from
// start up to end (exclusive; 0 means until no n-gram repeats).
//
//	FrequencyOfDeltas("ABCDBCDABCDBC", 3, 0)
//	// {7:3, 3:1, 4:1} {7:3} {7:2} {7:1}
func FrequencyOfDeltas(s bytestring.Bytes, start, end int) []Histogram {
	var out []Histogram
	ps := RepeatedPositions(s, start)
	for n := start; len(ps) > 0 && (end <= 0 || n < end); n++ {
		groups := make(map[int][]int)
		for _, p := range ps {
			groups[p.ID] = append(groups[p.ID], p.Pos)
		}

		h := make(Histogram)
		for _, positions := range groups {
			for _, d := range Deltas(positions) {
				h[d]++
			}
		}
		out = append(out, h)
		ps = MergeOverlapping(ps)
	}
	return out
}

// RankedDelta is a delta scored by RankDeltas.
type RankedDelta struct {
	Delta int
	// Score is the frequency of the delta times Ordinal.
	Score int
	// Ordinal is the 1-based index of the histogram the delta comes from.
	Ordinal int
}

// RankDeltas flattens a list of histograms for increasing n-gram lengths
// into a ranking, most significant first. A delta seen between longer
// n-grams is less likely a coincidence, so each frequency is multiplied by
// the 1-based position of its histogram. Ties go to the shorter n-gram and
// then to the smaller delta.
//
//	RankDeltas([{7:3, 9:1}, {9:1}]) // (7,3) (9,2) (9,1)
func RankDeltas(hists []Histogram) []RankedDelta {
	var out []RankedDelta
	for i, h := range hists {
		for d, f := range h {
			out = append(out, RankedDelta{Delta: d, Score: f * (i + 1), Ordinal: i + 1})
		}
	}
	slices.SortFunc(out, func(a, b RankedDelta) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Ordinal, b.Ordinal); c != 0 {
			return c
		}
		return cmp.Compare(a.Delta, b.Delta)
	})
	return out
}

// Report is the result of Examine.
type Report struct {
	// Histograms holds the delta histograms for the n-grams of length 3, 4, ...
	Histograms []Histogram
	// Ranked is the ranking of the deltas of all the histograms.
	Ranked []RankedDelta
}

// Examine runs the Kasiski examination on s starting with 3-grams.
func Examine(s bytestring.Bytes) Report {
	h := FrequencyOfDeltas(s, 3, 0)
	return Report{Histograms: h, Ranked: RankDeltas(h)}
}

// KeyLengths turns the ranking into weighted key length candidates: every
// delta gets its best score relative to the top score.
func (r Report) KeyLengths() (*candidate.Set[int], error) {
	best := make(map[int]float64)
	if len(r.Ranked) > 0 {
		top := float64(r.Ranked[0].Score)
		for _, rd := range r.Ranked {
			best[rd.Delta] = max(best[rd.Delta], float64(rd.Score)/top)
		}
	}
	return candidate.FromMap(best)
}
