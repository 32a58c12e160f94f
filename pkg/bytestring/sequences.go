package bytestring

import (
	"fmt"
	"slices"
)

// Transpose stacks seqs as the rows of a matrix and returns its columns.
// All the sequences must have the same length.
//
//	Transpose([]Bytes{"ABCD", "1234", "9876"}) // ["A19", "B28", "C37", "D46"]
func Transpose(seqs []Bytes) ([]Bytes, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	l := len(seqs[0])
	for i, s := range seqs {
		if len(s) != l {
			return nil, fmt.Errorf("%w: first sequence has %d bytes but the %dth has %d", ErrLengthMismatch, l, i+1, len(s))
		}
	}
	return transpose(seqs, nil), nil
}

// TransposeHoles is like Transpose but accepts sequences of different
// lengths: the missing bytes are skipped so later columns are shorter.
//
//	TransposeHoles([]Bytes{"ABCD", "12", "987"}) // ["A19", "B28", "C7", "D"]
func TransposeHoles(seqs []Bytes) []Bytes {
	return transpose(seqs, nil)
}

// TransposeFill is like TransposeHoles but the missing bytes are replaced
// by fill.
//
//	TransposeFill([]Bytes{"ABCD", "12", "987"}, '.') // ["A19", "B28", "C.7", "D.."]
func TransposeFill(seqs []Bytes, fill byte) []Bytes {
	return transpose(seqs, &fill)
}

func transpose(seqs []Bytes, fill *byte) []Bytes {
	cols := 0
	for _, s := range seqs {
		cols = max(cols, len(s))
	}
	out := make([]Bytes, cols)
	col := make([]byte, 0, len(seqs))
	for j := range out {
		col = col[:0]
		for _, s := range seqs {
			switch {
			case j < len(s):
				col = append(col, s[j])
			case fill != nil:
				col = append(col, *fill)
			}
		}
		out[j] = Bytes(col)
	}
	return out
}

// UniformLength cuts every sequence to the length of the shortest one that
// survives, dropping up to the given fraction of the shortest sequences
// (drop in [0, 1]). The order of the sequences is kept.
//
//	seqs := []Bytes{"ABCD", "12", "987", "ABC", "ABCD"}
//	UniformLength(seqs, 0)   // ["AB", "12", "98", "AB", "AB"]
//	UniformLength(seqs, 0.5) // ["ABC", "987", "ABC", "ABC"]
//	UniformLength(seqs, 1)   // ["ABCD", "ABCD"]
func UniformLength(seqs []Bytes, drop float64) []Bytes {
	if len(seqs) == 0 {
		return nil
	}
	lens := make([]int, len(seqs))
	for i, s := range seqs {
		lens[i] = len(s)
	}
	slices.Sort(lens)

	idx := min(int(drop*float64(len(seqs))), len(seqs)-1)
	return CutToLength(seqs, lens[max(idx, 0)])
}

// CutToLength drops the sequences shorter than length and cuts the rest
// to exactly length bytes.
func CutToLength(seqs []Bytes, length int) []Bytes {
	out := make([]Bytes, 0, len(seqs))
	for _, s := range seqs {
		if len(s) >= length {
			out = append(out, s[:length])
		}
	}
	return out
}
