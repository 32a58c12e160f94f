package bytestring

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// FromHex decodes a base 16 string. Spaces and newlines are ignored.
func FromHex(s string) (Bytes, error) {
	raw, err := hex.DecodeString(stripSpaces(s))
	if err != nil {
		return "", fmt.Errorf("failed to decode hex: %w", err)
	}
	return Bytes(raw), nil
}

// FromBase64 decodes a standard base 64 string. Spaces and newlines are ignored.
func FromBase64(s string) (Bytes, error) {
	raw, err := base64.StdEncoding.DecodeString(stripSpaces(s))
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}
	return Bytes(raw), nil
}

// FromLetters maps a text made of letters of a single case plus spaces to the
// values 0..25, the way classical ciphers are usually written down.
//
//	FromLetters("AAABB CCCDD", true) // 00 00 00 01 01 02 02 02 03 03
func FromLetters(text string, upper bool) (Bytes, error) {
	offset, want := 'a', "lowercase"
	if upper {
		offset, want = 'A', "uppercase"
	}

	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if r > unicode.MaxASCII || !unicode.IsLetter(r) || unicode.IsUpper(r) != upper {
			return "", fmt.Errorf("text must contain %s letters plus spaces only", want)
		}
		out = append(out, byte(r-offset))
	}
	return Bytes(out), nil
}

// Hex encodes b in base 16.
func (b Bytes) Hex() string { return hex.EncodeToString([]byte(b)) }

// Base64 encodes b in standard base 64.
func (b Bytes) Base64() string { return base64.StdEncoding.EncodeToString([]byte(b)) }

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
