package bytestring

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPad_PKCS7(t *testing.T) {
	p, err := Bytes("AAAAAAAAAAAA").Pad(16, PKCS7)
	require.NoError(t, err)
	assert.Equal(t, Bytes("AAAAAAAAAAAA\x04\x04\x04\x04"), p)

	p, err = Bytes("AAAAAAAAAAAABBBB").Pad(16, PKCS7)
	require.NoError(t, err)
	assert.Equal(t, Bytes("AAAAAAAAAAAABBBB")+Repeat(16, 16), p)
}

func TestPad_Zeros(t *testing.T) {
	p, err := Bytes("ABC").Pad(4, Zeros)
	require.NoError(t, err)
	assert.Equal(t, Bytes("ABC\x00"), p)

	p, err = Bytes("ABCD").Pad(4, Zeros)
	require.NoError(t, err)
	assert.Equal(t, Bytes("ABCD"), p)
}

func TestPad_Errors(t *testing.T) {
	_, err := Bytes("A").Pad(16, "iso10126")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Bytes("A").Unpad("iso10126")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Bytes("A").Pad(0, PKCS7)
	assert.Error(t, err)

	_, err = Bytes("A").Pad(256, PKCS7)
	assert.Error(t, err)
}

func TestUnpad_Roundtrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for n := 1; n <= 32; n++ {
		for size := 0; size < 40; size++ {
			s := randomBytes(r, size)

			padded, err := s.Pad(n, PKCS7)
			require.NoError(t, err)
			assert.Zero(t, padded.Len()%n)

			got, err := padded.Unpad(PKCS7)
			require.NoError(t, err)
			assert.Equal(t, s, got)

			got, err = padded.UnpadBlock(n, PKCS7)
			require.NoError(t, err)
			assert.Equal(t, s, got)

			// zero padding is only reversible for content not ending in 0x00
			z := s + "x"
			padded, err = z.Pad(n, Zeros)
			require.NoError(t, err)
			got, err = padded.Unpad(Zeros)
			require.NoError(t, err)
			assert.Equal(t, z, got)
		}
	}
}

func TestUnpad_Invalid(t *testing.T) {
	cases := []Bytes{
		"",
		"AAAA\x00",
		"AAAA\x05",
		"AAAA\x03\x02\x03",
		"\x02",
	}
	for _, c := range cases {
		_, err := c.Unpad(PKCS7)
		assert.ErrorIs(t, err, ErrInvalidPadding, "%q", c)
	}
}

func TestUnpadBlock_RejectsLongPad(t *testing.T) {
	s := Repeat(8, 8)
	got, err := s.Unpad(PKCS7)
	require.NoError(t, err)
	assert.Equal(t, Bytes(""), got)

	_, err = s.UnpadBlock(4, PKCS7)
	assert.ErrorIs(t, err, ErrInvalidPadding)

	_, err = Bytes("AAAAA\x01").UnpadBlock(4, PKCS7)
	assert.ErrorIs(t, err, ErrInvalidPadding)
}
