package bytestring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspose(t *testing.T) {
	cols, err := Transpose([]Bytes{"ABCD", "1234", "9876"})
	require.NoError(t, err)
	assert.Equal(t, []Bytes{"A19", "B28", "C37", "D46"}, cols)

	_, err = Transpose([]Bytes{"ABCD", "12", "987"})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	cols, err = Transpose(nil)
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestTranspose_Holes(t *testing.T) {
	seqs := []Bytes{"ABCD", "12", "987"}
	assert.Equal(t, []Bytes{"A19", "B28", "C7", "D"}, TransposeHoles(seqs))
	assert.Equal(t, []Bytes{"A19", "B28", "C.7", "D.."}, TransposeFill(seqs, '.'))
}

func TestUniformLength(t *testing.T) {
	seqs := []Bytes{"ABCD", "12", "987", "ABC", "ABCD"}

	assert.Equal(t, []Bytes{"AB", "12", "98", "AB", "AB"}, UniformLength(seqs, 0))
	assert.Equal(t, []Bytes{"ABC", "987", "ABC", "ABC"}, UniformLength(seqs, 0.5))
	assert.Equal(t, []Bytes{"ABCD", "ABCD"}, UniformLength(seqs, 1))
	assert.Equal(t, []Bytes{"ABC", "987", "ABC", "ABC"}, CutToLength(seqs, 3))
	assert.Equal(t, []Bytes{"ABCD", "12", "987", "ABC", "ABCD"}, seqs, "input must not change")
	assert.Empty(t, UniformLength(nil, 0.5))
}
