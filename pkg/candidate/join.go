package candidate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Join combines the sets in order: every choice of one candidate per set is
// merged with combine into a new candidate whose weight is the product of
// the chosen weights.
//
// A cutoff below 1 is a minimum weight: combinations lighter than cutoff are
// dropped. A cutoff of 1 or more is a count: only the int(cutoff) heaviest
// combinations are returned. In that mode the sets are shrunk first, dropping
// the lightest candidates while the product of the set sizes stays above the
// count, so the result is an approximation of the true top combinations.
//
//	A = {y: 0.9, a: 0.6}, B = {j: 0.7, e: 0.6}, C = {s: 0.4}
//	Join([A, B, C], 0, Concat)   // {yjs: 0.252, yes: 0.216, ajs: 0.168, aes: 0.144}
//	Join([A, B, C], 0.2, Concat) // {yjs: 0.252, yes: 0.216}
//	Join([A, B, C], 3, Concat)   // {yjs: 0.252, yes: 0.216, ajs: 0.168}
func Join[K cmp.Ordered](sets []*Set[K], cutoff float64, combine func(parts []K) K) (*Set[K], error) {
	if cutoff < 0 {
		return nil, fmt.Errorf("%w: the cut off is %0.4f but it must be non negative", ErrInvalidMembership, cutoff)
	}
	if len(sets) == 0 {
		return Empty[K](), nil
	}
	if cutoff < 1 {
		return product(sets, cutoff, combine), nil
	}

	top := int(cutoff)
	budgets := shrinkBudgets(sets, top)

	trimmed := make([]*Set[K], len(sets))
	for i, s := range sets {
		trimmed[i] = s.Clone()
		trimmed[i].CutOffTop(budgets[i])
	}

	out := product(trimmed, 0, combine)
	out.CutOffTop(top)
	return out, nil
}

// Concat is a combine function for Join over string-like candidates.
func Concat[K ~string](parts []K) K {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(string(p))
	}
	return K(sb.String())
}

type membership struct {
	pr  float64
	set int
}

// shrinkBudgets decides how many candidates of each set survive: walking all
// the weights from the lightest one, each step removes one candidate from the
// owning set (never its last one) until the number of combinations would
// drop to top or less.
func shrinkBudgets[K cmp.Ordered](sets []*Set[K], top int) []int {
	budgets := make([]int, len(sets))
	var all []membership
	for i, s := range sets {
		budgets[i] = s.Len()
		for _, pr := range s.m {
			all = append(all, membership{pr: pr, set: i})
		}
	}
	slices.SortFunc(all, func(a, b membership) int {
		if c := cmp.Compare(a.pr, b.pr); c != 0 {
			return c
		}
		return cmp.Compare(a.set, b.set)
	})

	for _, m := range all {
		if budgets[m.set] == 1 {
			continue
		}
		budgets[m.set]--
		if combinations(budgets) <= float64(top) {
			budgets[m.set]++
			break
		}
	}
	return budgets
}

func combinations(budgets []int) float64 {
	n := 1.0
	for _, b := range budgets {
		n *= float64(b)
	}
	return n
}

// product builds the cartesian product of the sets. Since every weight is at
// most 1 a partial product below cutoff can't recover and is pruned early.
func product[K cmp.Ordered](sets []*Set[K], cutoff float64, combine func([]K) K) *Set[K] {
	out := Empty[K]()
	items := make([][]Item[K], len(sets))
	for i, s := range sets {
		items[i] = s.SortedItems()
	}

	parts := make([]K, len(sets))
	var walk func(depth int, pr float64)
	walk = func(depth int, pr float64) {
		if pr < cutoff {
			return
		}
		if depth == len(sets) {
			k := combine(slices.Clone(parts))
			if pr > out.m[k] {
				out.put(k, pr)
			}
			return
		}
		for _, it := range items[depth] {
			parts[depth] = it.Key
			walk(depth+1, pr*it.Weight)
		}
	}
	walk(0, 1)
	return out
}
