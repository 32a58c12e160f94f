package candidate

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// ErrInvalidMembership is returned when a weight or a minimum membership
// falls outside [0, 1].
var ErrInvalidMembership = errors.New("invalid membership")

// Item is a candidate with its weight.
type Item[K cmp.Ordered] struct {
	Key    K
	Weight float64
}

// Set is a weighted candidate set.
//
// Every weight lies in (MinMembership, 1]; storing a weight at or below the
// minimum (or exactly 0) removes the candidate instead.
type Set[K cmp.Ordered] struct {
	m             map[K]float64
	minMembership float64
}

// Option configures a new Set.
type Option func(*options)

type options struct {
	minMembership float64
}

// WithMinMembership drops, now and on every later insert, the candidates
// whose weight is not above pr.
func WithMinMembership(pr float64) Option {
	return func(o *options) { o.minMembership = pr }
}

// New returns an empty set.
func New[K cmp.Ordered](opts ...Option) (*Set[K], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkMembership("minimum membership", o.minMembership); err != nil {
		return nil, err
	}
	return &Set[K]{m: make(map[K]float64), minMembership: o.minMembership}, nil
}

// Empty returns an empty set with no minimum membership.
func Empty[K cmp.Ordered]() *Set[K] {
	return &Set[K]{m: make(map[K]float64)}
}

// FromMap builds a set from a candidate to weight map.
func FromMap[K cmp.Ordered](m map[K]float64, opts ...Option) (*Set[K], error) {
	return FromSeq(maps.All(m), opts...)
}

// FromPairs builds a set from parallel slices of candidates and weights.
func FromPairs[K cmp.Ordered](keys []K, weights []float64, opts ...Option) (*Set[K], error) {
	if len(keys) != len(weights) {
		return nil, fmt.Errorf("got %d candidates but %d weights", len(keys), len(weights))
	}
	return FromSeq(func(yield func(K, float64) bool) {
		for i, k := range keys {
			if !yield(k, weights[i]) {
				return
			}
		}
	}, opts...)
}

// FromKeys builds a set where every candidate has the same weight.
func FromKeys[K cmp.Ordered](keys []K, weight float64, opts ...Option) (*Set[K], error) {
	return FromSeq(func(yield func(K, float64) bool) {
		for _, k := range keys {
			if !yield(k, weight) {
				return
			}
		}
	}, opts...)
}

// OfKeys builds a set where every candidate has weight 1, the default
// uniform weight.
func OfKeys[K cmp.Ordered](keys ...K) *Set[K] {
	s := Empty[K]()
	s.Add(keys...)
	return s
}

// FromSeq builds a set from a sequence of (candidate, weight) pairs.
// Later pairs overwrite earlier ones.
func FromSeq[K cmp.Ordered](seq iter.Seq2[K, float64], opts ...Option) (*Set[K], error) {
	s, err := New[K](opts...)
	if err != nil {
		return nil, err
	}
	for k, pr := range seq {
		if err := s.Set(k, pr); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of candidates.
func (s *Set[K]) Len() int { return len(s.m) }

// MinMembership returns the current minimum membership.
func (s *Set[K]) MinMembership() float64 { return s.minMembership }

// Get returns the weight of k, 0 if k is not in the set.
func (s *Set[K]) Get(k K) float64 { return s.m[k] }

// Has reports whether k is in the set.
func (s *Set[K]) Has(k K) bool {
	_, ok := s.m[k]
	return ok
}

// Set stores k with weight pr, or removes k when pr is not above the
// minimum membership.
func (s *Set[K]) Set(k K, pr float64) error {
	if err := checkMembership(fmt.Sprintf("membership of %v", k), pr); err != nil {
		return err
	}
	s.put(k, pr)
	return nil
}

func (s *Set[K]) put(k K, pr float64) {
	if pr <= s.minMembership || pr == 0 {
		delete(s.m, k)
		return
	}
	s.m[k] = pr
}

// Add stores every key with weight 1. Unlike Set it can't fail: 1 is
// always a valid weight (a minimum membership of 1 still drops it).
func (s *Set[K]) Add(keys ...K) {
	for _, k := range keys {
		s.put(k, 1)
	}
}

// Delete removes k.
func (s *Set[K]) Delete(k K) { delete(s.m, k) }

// SetMinMembership changes the minimum membership and drops every candidate
// that no longer reaches it.
func (s *Set[K]) SetMinMembership(pr float64) error {
	if err := checkMembership("minimum membership", pr); err != nil {
		return err
	}
	s.minMembership = pr
	maps.DeleteFunc(s.m, func(_ K, w float64) bool { return w <= pr })
	return nil
}

// Clone returns an independent copy of s.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{m: maps.Clone(s.m), minMembership: s.minMembership}
}

// All iterates the candidates in no particular order.
func (s *Set[K]) All() iter.Seq2[K, float64] { return maps.All(s.m) }

// SortedItems returns the candidates, heaviest first. Candidates with the
// same weight are sorted by ascending key.
func (s *Set[K]) SortedItems() []Item[K] {
	items := make([]Item[K], 0, len(s.m))
	for k, pr := range s.m {
		items = append(items, Item[K]{Key: k, Weight: pr})
	}
	slices.SortFunc(items, func(a, b Item[K]) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return items
}

// SortedKeys returns the candidates in SortedItems order.
func (s *Set[K]) SortedKeys() []K {
	items := s.SortedItems()
	keys := make([]K, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	return keys
}

// MostLikely returns the heaviest candidate. The boolean is false for an
// empty set.
func (s *Set[K]) MostLikely() (K, bool) {
	var (
		best   K
		bestPr float64
		found  bool
	)
	for k, pr := range s.m {
		if !found || pr > bestPr || (pr == bestPr && k < best) {
			best, bestPr, found = k, pr, true
		}
	}
	return best, found
}

// MostLikelyN returns up to n candidates, heaviest first.
func (s *Set[K]) MostLikelyN(n int) []K {
	keys := s.SortedKeys()
	if n >= 0 && n < len(keys) {
		keys = keys[:n]
	}
	return keys
}

// CutOffTop keeps only the n heaviest candidates.
func (s *Set[K]) CutOffTop(n int) {
	if n >= len(s.m) {
		return
	}
	for _, it := range s.SortedItems()[max(n, 0):] {
		delete(s.m, it.Key)
	}
}

// CutOffBelow drops the candidates whose weight is below t.
func (s *Set[K]) CutOffBelow(t float64) {
	maps.DeleteFunc(s.m, func(_ K, w float64) bool { return w < t })
}

// Scale multiplies every weight by f. Weights that fall to the minimum
// membership or below are dropped.
func (s *Set[K]) Scale(f float64) error {
	for k, pr := range s.m {
		if err := checkMembership(fmt.Sprintf("scaled membership of %v", k), pr*f); err != nil {
			return err
		}
	}
	for k, pr := range s.m {
		s.put(k, pr*f)
	}
	return nil
}

// Normalize scales the weights so they add up to 1. An empty set is left
// untouched.
func (s *Set[K]) Normalize() {
	sum := 0.0
	for _, pr := range s.m {
		sum += pr
	}
	if sum > 0 {
		for k, pr := range s.m {
			s.put(k, min(pr/sum, 1))
		}
	}
}

// Union returns a new set with the candidates of both sets, each with the
// maximum of its two weights. It keeps the minimum membership of s.
func (s *Set[K]) Union(other *Set[K]) *Set[K] {
	out := s.Clone()
	out.Update(other)
	return out
}

// Update merges other into s keeping the maximum weights.
func (s *Set[K]) Update(other *Set[K]) {
	for k, pr := range other.m {
		if pr > s.m[k] {
			s.put(k, pr)
		}
	}
}

// Intersection returns a new set with the candidates present in both sets,
// each with the minimum of its two weights. It keeps the minimum membership
// of s.
func (s *Set[K]) Intersection(other *Set[K]) *Set[K] {
	out := &Set[K]{m: make(map[K]float64), minMembership: s.minMembership}
	small, big := s, other
	if other.Len() < s.Len() {
		small, big = other, s
	}
	for k, pr := range small.m {
		out.put(k, min(pr, big.m[k]))
	}
	return out
}

// IsSubset reports whether every candidate of s is in other with at least
// the same weight.
func (s *Set[K]) IsSubset(other *Set[K]) bool {
	for k, pr := range s.m {
		if pr > other.m[k] {
			return false
		}
	}
	return true
}

// IsSuperset reports whether other is a subset of s.
func (s *Set[K]) IsSuperset(other *Set[K]) bool { return other.IsSubset(s) }

// Equal reports whether both sets hold the same candidates with the same
// weights.
func (s *Set[K]) Equal(other *Set[K]) bool { return maps.Equal(s.m, other.m) }

// String renders the set heaviest first, like {'a' -> 0.9000, 'b' -> 0.8000}.
func (s *Set[K]) String() string {
	buf := []byte{'{'}
	for i, it := range s.SortedItems() {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = fmt.Appendf(buf, "%q -> %0.4f", fmt.Sprint(it.Key), it.Weight)
	}
	return string(append(buf, '}'))
}

func checkMembership(what string, pr float64) error {
	if !(pr >= 0 && pr <= 1) {
		return fmt.Errorf("%w: the %s is %0.4f but it must be a value between 0 and 1", ErrInvalidMembership, what, pr)
	}
	return nil
}
