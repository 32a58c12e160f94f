package attacks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cryptonita/internal/oracle"
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

func newECBOracle(t *testing.T, prefix, secret bytestring.Bytes) EncryptionOracle {
	t.Helper()
	key, err := oracle.RandomBytes(oracle.BlockSize)
	require.NoError(t, err)
	o, err := oracle.NewECBSuffix(key, prefix, secret)
	require.NoError(t, err)
	return o.Encrypt
}

func prefixOf(n int) bytestring.Bytes {
	buf := bytestring.NewBuffer(n)
	for i := 0; i < n; i++ {
		buf.Set(i, byte(i))
	}
	return buf.Freeze()
}

func TestDecryptECBTail(t *testing.T) {
	secrets := []bytestring.Bytes{
		"",
		"Z",
		"Rollin' in my 5.0\nWith my rag-top down so my hair can blow\n",
	}
	for _, prefixLen := range []int{0, 5, 16, 21} {
		for _, secret := range secrets {
			t.Run(fmt.Sprintf("prefix %d secret %d", prefixLen, secret.Len()), func(t *testing.T) {
				enc := newECBOracle(t, prefixOf(prefixLen), secret)

				bs, err := DetectBlockSize(enc)
				require.NoError(t, err)
				require.Equal(t, oracle.BlockSize, bs)

				alignment, err := FindECBAlignment(bs, enc)
				require.NoError(t, err)
				assert.Equal(t, (bs-prefixLen%bs)%bs, alignment)

				got, err := DecryptECBTail(alignment, bs, enc, 0)
				require.NoError(t, err)
				assert.Equal(t, secret, got)
			})
		}
	}
}

func TestDecryptECBTail_Limit(t *testing.T) {
	enc := newECBOracle(t, "", "YELLOW SUBMARINE")
	got, err := DecryptECBTail(0, oracle.BlockSize, enc, 6)
	require.NoError(t, err)
	assert.Equal(t, bytestring.Bytes("YELLOW"), got)
}

func TestDecryptECBTail_Errors(t *testing.T) {
	boom := errors.New("boom")
	failing := func(bytestring.Bytes) (bytestring.Bytes, error) { return "", boom }

	_, err := DecryptECBTail(0, 16, failing, 0)
	assert.ErrorIs(t, err, boom)

	_, err = DecryptECBTail(16, 16, failing, 0)
	assert.Error(t, err)

	_, err = DetectBlockSize(failing)
	assert.ErrorIs(t, err, boom)
}

func TestIsECB(t *testing.T) {
	enc := newECBOracle(t, "", "")
	c, err := enc(bytestring.Repeat('A', 48))
	require.NoError(t, err)
	assert.True(t, IsECB(c, 16))
	assert.False(t, IsECB(prefixOf(64), 16))
}
