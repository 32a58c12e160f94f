package nonce

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser_Parse(t *testing.T) {
	input := `[
		{"message": "hello", "r": "0x0a", "s": "255"},
		{"z": "ff", "r": 12345678901234567890123, "s": "0X10", "public_key": "0x0102"},
		{"message": "0x6869", "r": "1", "s": "2"}
	]`
	sigs, err := (&JSONParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sigs, 3)

	assert.Equal(t, []byte("hello"), sigs[0].Message)
	assert.Nil(t, sigs[0].Z)
	assert.Equal(t, int64(10), sigs[0].R.Int64())
	assert.Equal(t, int64(255), sigs[0].S.Int64())

	assert.Equal(t, int64(255), sigs[1].Z.Int64())
	assert.Equal(t, "12345678901234567890123", sigs[1].R.String())
	assert.Equal(t, int64(16), sigs[1].S.Int64())
	assert.Equal(t, []byte{1, 2}, sigs[1].PublicKey)

	assert.Equal(t, []byte("hi"), sigs[2].Message)
}

func TestJSONParser_CustomFields(t *testing.T) {
	p := &JSONParser{Fields: Fields{R: "sig_r", S: "sig_s", Message: "msg"}}
	sigs, err := p.Parse(strings.NewReader(`[{"msg": "m", "sig_r": "1", "sig_s": "2"}]`))
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, []byte("m"), sigs[0].Message)
}

func TestJSONParser_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"not an array":  `{"r": "1"}`,
		"missing s":     `[{"r": "1"}]`,
		"bad number":    `[{"r": "xyz", "s": "1"}]`,
		"bad type":      `[{"r": "1", "s": true}]`,
		"bad hex key":   `[{"r": "1", "s": "1", "public_key": "zz"}]`,
		"bad hex bytes": `[{"r": "1", "s": "1", "message": "0xabc"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := (&JSONParser{}).Parse(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	input := "message,r,s,z\nhello,0x0a,255,\n,1,2,0xff\n"
	sigs, err := (&CSVParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	assert.Equal(t, []byte("hello"), sigs[0].Message)
	assert.Nil(t, sigs[0].Z)
	assert.Equal(t, int64(10), sigs[0].R.Int64())
	assert.Nil(t, sigs[1].Message)
	assert.Equal(t, int64(255), sigs[1].Z.Int64())

	_, err = (&CSVParser{}).Parse(strings.NewReader("message,r\nhello,1\n"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParserFor(t *testing.T) {
	assert.IsType(t, &CSVParser{}, ParserFor("sigs.CSV"))
	assert.IsType(t, &JSONParser{}, ParserFor("sigs.json"))
}

func TestParseSignatures_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"z": "1", "r": "2", "s": "3"}]`), 0o600))

	sigs, err := ParserFor(path).ParseSignatures(path)
	require.NoError(t, err)
	assert.Len(t, sigs, 1)

	_, err = ParserFor(path).ParseSignatures(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestParseBigInt(t *testing.T) {
	for in, want := range map[string]string{
		"42":     "42",
		" 42 ":   "42",
		"0x2a":   "42",
		"0X2A":   "42",
		"2a":     "42",
		"ff":     "255",
		"000010": "10",
	} {
		got, err := ParseBigInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	for _, in := range []string{"", "0x", "12g", "-0xz"} {
		_, err := ParseBigInt(in)
		assert.Error(t, err, in)
	}
}
