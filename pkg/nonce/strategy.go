package nonce

import (
	"math/big"
	"slices"
)

// Pattern is an (a, b) relation to test.
type Pattern struct {
	A    *big.Int
	B    *big.Int
	Name string
	// Priority orders the patterns, lower first. It also sets the weight of
	// the keys the pattern yields in Strategy.Candidates.
	Priority int
}

// Range is a rectangle of (a, b) values, both bounds inclusive.
type Range struct {
	A    [2]int
	B    [2]int
	Name string
}

// RangeConfig configures the brute-force phase.
type RangeConfig struct {
	// Ranges are swept in order until a key is found.
	Ranges []Range

	// MaxPairs limits the number of signature pairs to test
	MaxPairs int

	// NumWorkers controls parallelization (0 = one per CPU)
	NumWorkers int

	// SkipZeroA skips a=0, which never relates two nonces
	SkipZeroA bool
}

// DefaultRangeConfig sweeps increasingly wider ranges.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{
		Ranges: []Range{
			{A: [2]int{1, 1}, B: [2]int{-100, 100}, Name: "a=1, small b"},
			{A: [2]int{1, 1}, B: [2]int{-1000, 1000}, Name: "a=1, medium b"},
			{A: [2]int{1, 1}, B: [2]int{-10000, 10000}, Name: "a=1, larger b"},
			{A: [2]int{2, 4}, B: [2]int{-1000, 1000}, Name: "small a, medium b"},
			{A: [2]int{-5, -1}, B: [2]int{-1000, 1000}, Name: "negative a, medium b"},
			{A: [2]int{1, 10}, B: [2]int{-50000, 50000}, Name: "wider a, larger b"},
		},
		MaxPairs:   100,
		NumWorkers: 0,
		SkipZeroA:  true,
	}
}

// PatternConfig configures the pattern phases.
type PatternConfig struct {
	// CustomPatterns are tested after the common ones, before the sweep.
	CustomPatterns []Pattern

	IncludeCommonPatterns bool
}

// DefaultPatternConfig enables the common patterns.
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{IncludeCommonPatterns: true}
}

// CommonPatterns returns a copy of the built-in patterns, sorted by
// priority.
func CommonPatterns() []Pattern {
	out := []Pattern{
		{A: big.NewInt(1), B: big.NewInt(0), Name: "same_nonce", Priority: 1},
		{A: big.NewInt(1), B: big.NewInt(1), Name: "counter_+1", Priority: 2},
		{A: big.NewInt(1), B: big.NewInt(-1), Name: "counter_-1", Priority: 2},
	}
	for _, step := range []int64{2, 3, 4, 5} {
		out = append(out,
			Pattern{A: big.NewInt(1), B: big.NewInt(step), Name: "counter_+" + big.NewInt(step).String(), Priority: 3},
			Pattern{A: big.NewInt(1), B: big.NewInt(-step), Name: "counter_-" + big.NewInt(step).String(), Priority: 3},
		)
	}
	for _, step := range []int64{8, 10, 16, 32, 64, 71, 73, 97, 100, 128, 256, 512, 1000, 1024, 10000, 12345} {
		out = append(out, Pattern{A: big.NewInt(1), B: big.NewInt(step), Name: "step_" + big.NewInt(step).String(), Priority: 4})
	}
	out = append(out,
		Pattern{A: big.NewInt(2), B: big.NewInt(0), Name: "multiply_2", Priority: 5},
		Pattern{A: big.NewInt(2), B: big.NewInt(1), Name: "multiply_2_+1", Priority: 5},
		Pattern{A: big.NewInt(3), B: big.NewInt(0), Name: "multiply_3", Priority: 5},
		Pattern{A: big.NewInt(4), B: big.NewInt(0), Name: "multiply_4", Priority: 5},
		Pattern{A: big.NewInt(-1), B: big.NewInt(0), Name: "negate", Priority: 6},
	)
	return out
}

// sortedPatterns returns the patterns by ascending priority, keeping the
// given order for equal priorities.
func sortedPatterns(ps []Pattern) []Pattern {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Pattern) int { return a.Priority - b.Priority })
	return out
}

// prior is the weight of a key found by a pattern of the given priority.
func prior(priority int) float64 {
	return 1 / float64(max(priority, 1))
}
