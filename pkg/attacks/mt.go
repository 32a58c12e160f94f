package attacks

import (
	"fmt"

	"github.com/mahdiidarabi/cryptonita/pkg/prng"
)

// CloneMT19937 rebuilds a Mersenne Twister from consecutive outputs.
//
// Untempering each of the first 624 outputs gives back the internal state
// word that produced it; the state is loaded with a pending twist, so the
// clone continues right after those outputs. Any output beyond the first
// 624 is replayed on the clone to check it, leaving the clone positioned
// after the last supplied output. The seed is not recovered.
func CloneMT19937(outputs []uint32) (*prng.MT19937, error) {
	n := prng.StateSize
	if len(outputs) < n {
		return nil, fmt.Errorf("%w: you need at least %d numbers to clone the MT19937 PRNG but you have only %d",
			ErrInsufficientData, n, len(outputs))
	}

	state := make([]uint32, n)
	for i, y := range outputs[:n] {
		state[i] = prng.Untemper(y)
	}

	mt := prng.NewMT19937(0)
	if err := mt.Reset(state, n); err != nil {
		return nil, err
	}
	for i, want := range outputs[n:] {
		if got := mt.Uint32(); got != want {
			return nil, fmt.Errorf("%w: output %d is %d but the clone produced %d", ErrCloneMismatch, n+i, want, got)
		}
	}
	return mt, nil
}
