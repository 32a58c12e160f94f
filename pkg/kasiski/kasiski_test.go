package kasiski

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

const sample bytestring.Bytes = "ABCDBCDABCDBC"

func positionsOf(ps []Position) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.Pos
	}
	return out
}

func TestRepeatedPositions(t *testing.T) {
	got := RepeatedPositions(sample, 3)
	assert.Equal(t, []Position{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 2}, {7, 1}, {8, 2}, {9, 3}, {10, 4},
	}, got)

	got = RepeatedPositions("ABABABAB", 4)
	assert.Equal(t, []Position{{0, 1}, {1, 2}, {2, 1}, {3, 2}, {4, 1}}, got)

	assert.Empty(t, RepeatedPositions("AB", 3))
	assert.Empty(t, RepeatedPositions("ABCDEF", 3))
}

func TestMergeOverlapping(t *testing.T) {
	l3 := RepeatedPositions(sample, 3)

	l4 := MergeOverlapping(l3)
	assert.Equal(t, []int{0, 1, 2, 7, 8, 9}, positionsOf(l4))

	l5 := MergeOverlapping(l4)
	assert.Equal(t, []Position{{0, 1}, {1, 2}, {7, 1}, {8, 2}}, l5)

	l6 := MergeOverlapping(l5)
	assert.Equal(t, []int{0, 7}, positionsOf(l6))

	assert.Empty(t, MergeOverlapping(l6))

	assert.Len(t, l3, 9, "the input is not modified")
}

func TestMergeOverlapping_UniqueLongerGrams(t *testing.T) {
	// ABC and BCD repeat but ABCD doesn't
	l3 := RepeatedPositions("ABCDxABCExBCDyBCE", 3)
	require.NotEmpty(t, l3)
	assert.Empty(t, MergeOverlapping(l3))
}

func TestMergeOverlapping_MatchesDirectComputation(t *testing.T) {
	s := bytestring.Bytes("the quick fox and the quick dog and the lazy fox")
	for n := 3; n < 8; n++ {
		merged := MergeOverlapping(RepeatedPositions(s, n))
		direct := RepeatedPositions(s, n+1)
		assert.Equal(t, positionsOf(direct), positionsOf(merged), "n=%d", n)
	}
}

func TestDeltas(t *testing.T) {
	assert.Equal(t, []int{3, 3, 4}, Deltas([]int{1, 4, 7, 11}))
	assert.Empty(t, Deltas([]int{1}))
	assert.Empty(t, Deltas(nil))
}

func TestFrequencyOfDeltas(t *testing.T) {
	got := FrequencyOfDeltas(sample, 3, 0)
	assert.Equal(t, []Histogram{
		{7: 3, 3: 1, 4: 1},
		{7: 3},
		{7: 2},
		{7: 1},
	}, got)

	got = FrequencyOfDeltas(sample, 4, 6)
	assert.Equal(t, []Histogram{{7: 3}, {7: 2}}, got)

	assert.Empty(t, FrequencyOfDeltas("ABCDEFGH", 3, 0))
}

func TestRankDeltas(t *testing.T) {
	got := RankDeltas([]Histogram{{7: 3, 9: 1}, {9: 1}})
	assert.Equal(t, []RankedDelta{
		{Delta: 7, Score: 3, Ordinal: 1},
		{Delta: 9, Score: 2, Ordinal: 2},
		{Delta: 9, Score: 1, Ordinal: 1},
	}, got)

	assert.Empty(t, RankDeltas(nil))
}

func TestRankDeltas_Ties(t *testing.T) {
	got := RankDeltas([]Histogram{{8: 2, 4: 2}, {6: 1}})
	assert.Equal(t, []RankedDelta{
		{Delta: 4, Score: 2, Ordinal: 1},
		{Delta: 8, Score: 2, Ordinal: 1},
		{Delta: 6, Score: 2, Ordinal: 2},
	}, got)
}

func TestExamine_EngineeredRepeat(t *testing.T) {
	s := bytestring.Bytes("QWE" + "abcdefghij" + "QWE" + "klmnopqrst" + "QWE")
	r := Examine(s)
	assert.Equal(t, []Histogram{{13: 2}}, r.Histograms)
	require.NotEmpty(t, r.Ranked)
	assert.Equal(t, 13, r.Ranked[0].Delta)

	lengths, err := r.KeyLengths()
	require.NoError(t, err)
	k, ok := lengths.MostLikely()
	require.True(t, ok)
	assert.Equal(t, 13, k)
}

func TestExamine_RepeatingKey(t *testing.T) {
	pt := bytestring.Bytes("the secret is in the box and the box is in the secret room of the house")
	ct := pt.XorStream(bytestring.Bytes("KEY").Keystream())
	require.Len(t, ct, len(pt))

	r := Examine(ct)
	require.NotEmpty(t, r.Ranked)
	best := r.Ranked[0].Delta
	assert.Zero(t, best%3, "delta %d should be a multiple of the key length", best)

	lengths, err := r.KeyLengths()
	require.NoError(t, err)
	assert.Equal(t, 1.0, lengths.Get(best))
}

func TestReport_KeyLengthsEmpty(t *testing.T) {
	lengths, err := Examine("abc").KeyLengths()
	require.NoError(t, err)
	assert.Equal(t, 0, lengths.Len())
}
