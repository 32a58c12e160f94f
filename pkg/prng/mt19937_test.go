package prng

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMT19937_KnownOutputs(t *testing.T) {
	assert.Equal(t, uint32(3499211612), NewMT19937(5489).Uint32())
	assert.Equal(t, uint32(2357136044), NewMT19937(0).Uint32())

	mt := NewMT19937(5489)
	want := []uint32{3499211612, 581869302, 3890346734, 3586334585, 545404204}
	for i, w := range want {
		assert.Equal(t, w, mt.Uint32(), "output %d", i)
	}
}

func TestMT19937_Source(t *testing.T) {
	var src rand.Source = NewMT19937(1)
	r := rand.New(src)
	n := r.IntN(10)
	assert.True(t, n >= 0 && n < 10)

	a, b := NewMT19937(7), NewMT19937(7)
	hi, lo := b.Uint32(), b.Uint32()
	assert.Equal(t, uint64(hi)<<32|uint64(lo), a.Uint64())
}

func TestTemper_Inverse(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		y := r.Uint32()
		assert.Equal(t, y, Untemper(Temper(y)))
	}
}

func TestInvertShifts(t *testing.T) {
	y := uint32(524889969)

	assert.Equal(t, y, InvertRightShift(y^((y>>11)&0x010101), 11, 0x010101))
	assert.Equal(t, y, InvertLeftShift(y^((y<<3)&0x010101), 3, 0x010101))

	full := uint32(0xffffffff)
	assert.Equal(t, full, InvertRightShift(full^((full>>4)&0xffffffff), 4, 0xffffffff))
	assert.Equal(t, full, InvertLeftShift(full^((full<<4)&0xffffffff), 4, 0xffffffff))

	assert.Panics(t, func() { InvertRightShift(1, 0, 1) })
}

func TestReset(t *testing.T) {
	mt := NewMT19937(42)
	assert.Error(t, mt.Reset(make([]uint32, 3), 0))
	assert.Error(t, mt.Reset(make([]uint32, StateSize), StateSize+1))

	src := NewMT19937(42)
	for range 10 {
		src.Uint32()
	}
	clone := NewMT19937(0)
	require.NoError(t, clone.Reset(src.state[:], src.pos))
	for range 2 * StateSize {
		assert.Equal(t, src.Uint32(), clone.Uint32())
	}
}
