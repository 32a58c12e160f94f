package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

const sampleText = "It was the best of times, it was the worst of times, it was the age of wisdom, " +
	"it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity, " +
	"it was the season of Light, it was the season of Darkness, it was the spring of hope, " +
	"it was the winter of despair, we had everything before us, we had nothing before us."

func TestKeyLengthByHamming(t *testing.T) {
	ct := bytestring.Bytes(sampleText).XorStream(bytestring.Bytes("\x8f\x13\xd2\x5a\x77").Keystream())

	right, err := KeyLengthByHamming(ct, 5)
	require.NoError(t, err)
	wrong, err := KeyLengthByHamming(ct, 3)
	require.NoError(t, err)
	assert.Greater(t, right, wrong)
	assert.LessOrEqual(t, right, 1.0)
}

func TestKeyLengthByHamming_TooShort(t *testing.T) {
	_, err := KeyLengthByHamming("abc", 2)
	assert.ErrorIs(t, err, bytestring.ErrTooShort)

	_, err = KeyLengthByHamming("abcd", 0)
	assert.Error(t, err)
}

func TestKeyLengthByIC(t *testing.T) {
	ct := bytestring.Bytes(sampleText).XorStream(bytestring.Bytes("\x8f\x13\xd2\x5a\x77").Keystream())

	right, err := KeyLengthByIC(ct, 5)
	require.NoError(t, err)
	wrong, err := KeyLengthByIC(ct, 3)
	require.NoError(t, err)
	assert.Greater(t, right, wrong)
}
