// Package candidate implements weighted candidate sets: a mapping from a
// candidate (a key, a plaintext, a key length) to a weight in (0, 1].
//
// Attacks rarely produce a single answer. Instead each step produces a set of
// plausible answers, each with a weight that reflects how likely it is, and
// the sets are combined with Union, Intersection and Join before the most
// likely candidates are read off.
//
// Basic usage:
//
//	s, _ := candidate.FromMap(map[string]float64{"a": 1, "b": 0.8, "c": 0.4},
//	    candidate.WithMinMembership(0.5))
//	s.MostLikely() // "a"
//	s.Len()        // 2, "c" was dropped
package candidate
