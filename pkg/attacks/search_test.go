package attacks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingOracle(target int, asked *[]int) func(int) (bool, error) {
	return func(i int) (bool, error) {
		*asked = append(*asked, i)
		return i == target, nil
	}
}

func TestSearch_Order(t *testing.T) {
	cases := []struct {
		name   string
		likely int
		asked []int
	}{
		{name: "forward", likely: 2, asked: []int{2, 3, 4}},
		{name: "backward", likely: 10, asked: []int{9, 8, 7, 6, 5, 4}},
		{name: "middle", likely: Middle(2, 10), asked: []int{6, 5, 7, 4}},
		{name: "arbitrary", likely: 8, asked: []int{8, 7, 9, 6, 5, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var asked []int
			got, ok, err := Search(2, 10, tc.likely, recordingOracle(4, &asked))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 4, got)
			assert.Equal(t, tc.asked, asked)
		})
	}
}

func TestSearch_NotFound(t *testing.T) {
	var asked []int
	_, ok, err := Search(0, 3, 0, recordingOracle(7, &asked))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ElementsMatch(t, []int{0, 1, 2}, asked)
}

func TestSearch_OracleError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Search(0, 3, 0, func(int) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
