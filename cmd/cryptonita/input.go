package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// readInput reads path, or stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// decode turns the raw input into bytes according to encoding.
func decode(data []byte, encoding string) (bytestring.Bytes, error) {
	switch encoding {
	case "hex":
		return bytestring.FromHex(strings.TrimSpace(string(data)))
	case "base64":
		return bytestring.FromBase64(string(data))
	case "raw":
		return bytestring.Bytes(data), nil
	}
	return "", fmt.Errorf("unknown encoding %q, use hex, base64 or raw", encoding)
}

// printable replaces the non printable bytes of b with dots.
func printable(b bytestring.Bytes) string {
	out := []byte(b)
	for i, c := range out {
		if (c < 0x20 || c > 0x7e) && c != '\n' {
			out[i] = '.'
		}
	}
	return string(out)
}
