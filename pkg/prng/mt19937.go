// Package prng implements the pseudo random generators whose internal
// state the attacks package knows how to recover.
package prng

import "fmt"

// StateSize is the number of 32 bit words of MT19937 state, and therefore
// the number of consecutive outputs needed to clone a generator.
const StateSize = 624

const (
	offset      = 397
	multiplier  = 1812433253
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	coefficient = 0x9908b0df

	temperShiftU = 11
	temperMaskD  = 0xffffffff
	temperShiftS = 7
	temperMaskB  = 0x9d2c5680
	temperShiftT = 15
	temperMaskC  = 0xefc60000
	temperShiftL = 18
)

// MT19937 is the 32 bit Mersenne Twister. It satisfies math/rand/v2.Source.
type MT19937 struct {
	state [StateSize]uint32
	pos   int
}

// NewMT19937 returns a generator initialized from seed.
func NewMT19937(seed uint32) *MT19937 {
	var mt MT19937
	mt.state[0] = seed
	for i := 1; i < len(mt.state); i++ {
		mt.state[i] = multiplier*(mt.state[i-1]^(mt.state[i-1]>>30)) + uint32(i)
	}
	mt.pos = StateSize
	return &mt
}

// Reset replaces the internal state. index is the position of the next word
// to temper; StateSize forces a twist before the next output.
func (mt *MT19937) Reset(state []uint32, index int) error {
	if len(state) != StateSize {
		return fmt.Errorf("state must have %d words, got %d", StateSize, len(state))
	}
	if index < 0 || index > StateSize {
		return fmt.Errorf("setting index=%d is out of range", index)
	}
	copy(mt.state[:], state)
	mt.pos = index
	return nil
}

// twist scrambles the state array.
func (mt *MT19937) twist() {
	for i := range mt.state {
		n := (mt.state[i] & upperMask) | (mt.state[(i+1)%StateSize] & lowerMask)
		mt.state[i] = mt.state[(i+offset)%StateSize] ^ (n >> 1)
		if n&1 == 1 {
			mt.state[i] ^= coefficient
		}
	}
	mt.pos = 0
}

// Uint32 returns the next output.
func (mt *MT19937) Uint32() uint32 {
	if mt.pos >= StateSize {
		mt.twist()
	}
	n := Temper(mt.state[mt.pos])
	mt.pos++
	return n
}

// Uint64 joins two consecutive outputs, the first one in the high half.
func (mt *MT19937) Uint64() uint64 {
	return uint64(mt.Uint32())<<32 | uint64(mt.Uint32())
}

// Temper applies the MT19937 output transformation to a state word.
func Temper(y uint32) uint32 {
	y ^= (y >> temperShiftU) & temperMaskD
	y ^= (y << temperShiftS) & temperMaskB
	y ^= (y << temperShiftT) & temperMaskC
	y ^= y >> temperShiftL
	return y
}

// Untemper is the inverse of Temper: it recovers the state word behind an
// output.
func Untemper(y uint32) uint32 {
	y = InvertRightShift(y, temperShiftL, 0xffffffff)
	y = InvertLeftShift(y, temperShiftT, temperMaskC)
	y = InvertLeftShift(y, temperShiftS, temperMaskB)
	y = InvertRightShift(y, temperShiftU, temperMaskD)
	return y
}

// InvertRightShift returns y such that v == y ^ ((y >> b) & m).
// Each round fixes b more of the high bits.
func InvertRightShift(v uint32, b uint, m uint32) uint32 {
	if b == 0 || b >= 32 {
		panic(fmt.Sprintf("prng: shift %d out of range", b))
	}
	var g uint32
	for i := uint(0); i < 32; i += b {
		g = v ^ ((g >> b) & m)
	}
	return g
}

// InvertLeftShift returns y such that v == y ^ ((y << b) & m).
func InvertLeftShift(v uint32, b uint, m uint32) uint32 {
	if b == 0 || b >= 32 {
		panic(fmt.Sprintf("prng: shift %d out of range", b))
	}
	var g uint32
	for i := uint(0); i < 32; i += b {
		g = v ^ ((g << b) & m)
	}
	return g
}
