package nonce

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noSweep disables the brute-force phase.
var noSweep = RangeConfig{SkipZeroA: true}

func TestStrategy_Search_SameNonce(t *testing.T) {
	r := testRand()
	key := newECDSAKey(r)
	k := randScalar(r, Secp256k1Order)
	sigs := key.signAll([]*big.Int{randScalar(r, Secp256k1Order), k, k})

	result := NewStrategy(ECDSA{}).Search(context.Background(), sigs, key.pub)
	require.NotNil(t, result)
	assert.Equal(t, "same_nonce_reuse", result.Pattern)
	assert.Equal(t, [2]int{1, 2}, result.Pair)
	assert.True(t, result.Verified)
	assert.Equal(t, 0, result.PrivateKey.Cmp(key.d))
	assert.Equal(t, int64(1), result.Relation.A.Int64())
	assert.Equal(t, int64(0), result.Relation.B.Int64())
}

func TestStrategy_Search_CommonPatterns(t *testing.T) {
	r := testRand()
	key := newECDSAKey(r)
	sigs := key.signAll(nonces(r, 3, 1, 1, Secp256k1Order))

	result := NewStrategy(ECDSA{}).WithRangeConfig(noSweep).Search(context.Background(), sigs, key.pub)
	require.NotNil(t, result)
	assert.Equal(t, "counter_+1", result.Pattern)
	assert.Equal(t, [2]int{0, 1}, result.Pair)
	assert.Equal(t, 0, result.PrivateKey.Cmp(key.d))
}

func TestStrategy_Search_CustomPatterns(t *testing.T) {
	r := testRand()
	key := newEdDSAKey(t, r)
	sigs := key.signAll(t, nonces(r, 2, 5, 777777, Ed25519Order))

	strategy := NewStrategy(EdDSA{}).
		WithRangeConfig(noSweep).
		WithPatternConfig(PatternConfig{
			CustomPatterns: []Pattern{
				{A: big.NewInt(5), B: big.NewInt(1), Name: "wrong", Priority: 1},
				{A: big.NewInt(5), B: big.NewInt(777777), Name: "custom", Priority: 2},
			},
		})
	result := strategy.Search(context.Background(), sigs, nil)
	require.NotNil(t, result)
	assert.Equal(t, "custom", result.Pattern)
	assert.True(t, result.Verified, "the public key carried by the signatures is used")
	assert.Equal(t, 0, result.PrivateKey.Cmp(key.a))
}

func TestStrategy_Search_RangeSweep(t *testing.T) {
	r := testRand()
	key := newECDSAKey(r)
	sigs := key.signAll(nonces(r, 3, 1, 37, Secp256k1Order))

	strategy := NewStrategy(ECDSA{}).
		WithPatternConfig(PatternConfig{}).
		WithRangeConfig(RangeConfig{
			Ranges:     []Range{{A: [2]int{1, 1}, B: [2]int{-40, 40}, Name: "small"}},
			NumWorkers: 2,
			SkipZeroA:  true,
		})
	result := strategy.Search(context.Background(), sigs, key.pub)
	require.NotNil(t, result)
	assert.Equal(t, "brute_force_a1_b37", result.Pattern)
	assert.Equal(t, 0, result.PrivateKey.Cmp(key.d))
}

func TestStrategy_Search_RangeSweepEdDSA(t *testing.T) {
	r := testRand()
	key := newEdDSAKey(t, r)
	sigs := key.signAll(t, nonces(r, 2, -2, 3, Ed25519Order))

	strategy := NewStrategy(EdDSA{}).
		WithPatternConfig(PatternConfig{}).
		WithRangeConfig(RangeConfig{
			Ranges: []Range{
				{A: [2]int{1, 1}, B: [2]int{-5, 5}, Name: "first"},
				{A: [2]int{-3, 3}, B: [2]int{-5, 5}, Name: "second"},
			},
			MaxPairs:  1,
			SkipZeroA: true,
		})
	result := strategy.Search(context.Background(), sigs, key.pub)
	require.NotNil(t, result)
	assert.Equal(t, int64(-2), result.Relation.A.Int64())
	assert.Equal(t, int64(3), result.Relation.B.Int64())
	assert.Equal(t, 0, result.PrivateKey.Cmp(key.a))
}

func TestStrategy_Search_NotFound(t *testing.T) {
	r := testRand()
	key := newECDSAKey(r)
	sigs := key.signAll([]*big.Int{randScalar(r, Secp256k1Order), randScalar(r, Secp256k1Order)})

	strategy := NewStrategy(ECDSA{}).WithRangeConfig(RangeConfig{
		Ranges:    []Range{{A: [2]int{-1, 1}, B: [2]int{-3, 3}}},
		SkipZeroA: true,
	})
	assert.Nil(t, strategy.Search(context.Background(), sigs, key.pub))
	assert.Nil(t, strategy.Search(context.Background(), sigs[:1], key.pub))
}

func TestStrategy_Search_Cancelled(t *testing.T) {
	r := testRand()
	key := newECDSAKey(r)
	sigs := key.signAll(nonces(r, 2, 1, 5000000, Secp256k1Order))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, NewStrategy(ECDSA{}).Search(ctx, sigs, key.pub))
}

func TestStrategy_Search_InvalidSignatures(t *testing.T) {
	sigs := []*Signature{{R: big.NewInt(1), S: big.NewInt(1)}, {R: big.NewInt(2), S: big.NewInt(2)}}
	assert.Nil(t, NewStrategy(EdDSA{}).Search(context.Background(), sigs, nil))

	_, err := NewStrategy(EdDSA{}).Candidates(context.Background(), sigs, nil)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestStrategy_Candidates(t *testing.T) {
	r := testRand()
	key := newEdDSAKey(t, r)
	sigs := key.signAll(t, nonces(r, 3, 1, 1, Ed25519Order))

	got, err := NewStrategy(EdDSA{}).Candidates(context.Background(), sigs, nil)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	best, ok := got.MostLikely()
	require.True(t, ok)
	assert.Equal(t, key.a.Text(16), best)
	assert.InDelta(t, prior(2), got.Get(best), 1e-12)
}

func TestStrategy_CandidatesUnverified(t *testing.T) {
	r := testRand()
	key := newECDSAKey(r)
	sigs := key.signAll(nonces(r, 2, 1, 1, Secp256k1Order))

	got, err := NewStrategy(ECDSA{}).Candidates(context.Background(), sigs, nil)
	require.NoError(t, err)
	assert.Equal(t, len(CommonPatterns()), got.Len())
	assert.InDelta(t, prior(2)/2, got.Get(key.d.Text(16)), 1e-12)

	got, err = NewStrategy(ECDSA{}).Candidates(context.Background(), sigs, key.pub)
	require.NoError(t, err)
	assert.Equal(t, []string{key.d.Text(16)}, got.SortedKeys())
}

func TestCommonPatterns_SortedByPriority(t *testing.T) {
	ps := CommonPatterns()
	require.NotEmpty(t, ps)
	assert.Equal(t, "same_nonce", ps[0].Name)
	for i := 1; i < len(ps); i++ {
		assert.LessOrEqual(t, ps[i-1].Priority, ps[i].Priority)
	}

	ps[0].Name = "changed"
	assert.Equal(t, "same_nonce", CommonPatterns()[0].Name)
}
