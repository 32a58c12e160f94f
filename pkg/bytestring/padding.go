package bytestring

import (
	"errors"
	"fmt"
)

// Scheme names a padding scheme.
type Scheme string

const (
	// PKCS7 appends k bytes of value k, k in [1, n].
	PKCS7 Scheme = "pkcs#7"
	// Zeros appends zero bytes up to the next multiple of n (nothing if aligned).
	Zeros Scheme = "zeros"
)

var (
	// ErrInvalidPadding is returned when the trailing pad is inconsistent.
	ErrInvalidPadding = errors.New("bad padding")

	// ErrUnsupportedScheme is returned for an unknown padding scheme name.
	ErrUnsupportedScheme = errors.New("unknown padding scheme")
)

// Pad pads b up to an n-bytes boundary using scheme.
//
//	Bytes("AAAAAAAAAAAA").Pad(16, PKCS7) // "AAAAAAAAAAAA\x04\x04\x04\x04"
func (b Bytes) Pad(n int, scheme Scheme) (Bytes, error) {
	if n <= 0 {
		return "", fmt.Errorf("block size must be positive, got %d", n)
	}

	switch scheme {
	case PKCS7:
		if n > 255 {
			return "", fmt.Errorf("block size %d does not fit a %s pad byte", n, scheme)
		}
		k := n - len(b)%n
		return b + Repeat(byte(k), k), nil
	case Zeros:
		k := (n - len(b)%n) % n
		return b + Repeat(0, k), nil
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnsupportedScheme, scheme)
	}
}

// Unpad removes and validates the trailing pad.
//
// The Zeros scheme is ambiguous by nature: every trailing zero byte is
// removed, including zeros that were part of the original content.
func (b Bytes) Unpad(scheme Scheme) (Bytes, error) {
	switch scheme {
	case PKCS7:
		k, err := pkcs7Length(b)
		if err != nil {
			return "", err
		}
		return b[:len(b)-k], nil
	case Zeros:
		i := len(b)
		for i > 0 && b[i-1] == 0 {
			i--
		}
		return b[:i], nil
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnsupportedScheme, scheme)
	}
}

// UnpadBlock is like Unpad but also checks that b is a whole number of
// n-byte blocks and that the pad is not longer than a block.
func (b Bytes) UnpadBlock(n int, scheme Scheme) (Bytes, error) {
	if n <= 0 {
		return "", fmt.Errorf("block size must be positive, got %d", n)
	}
	if len(b) == 0 || len(b)%n != 0 {
		return "", fmt.Errorf("%w: %d bytes is not a multiple of the block size %d", ErrInvalidPadding, len(b), n)
	}

	switch scheme {
	case PKCS7:
		k, err := pkcs7Length(b)
		if err != nil {
			return "", err
		}
		if k > n {
			return "", fmt.Errorf("%w '%s' with last byte %#x", ErrInvalidPadding, scheme, b[len(b)-1])
		}
		return b[:len(b)-k], nil
	case Zeros:
		i := len(b)
		for i > len(b)-n+1 && b[i-1] == 0 {
			i--
		}
		return b[:i], nil
	default:
		return "", fmt.Errorf("%w '%s'", ErrUnsupportedScheme, scheme)
	}
}

func pkcs7Length(b Bytes) (int, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("%w '%s': empty string", ErrInvalidPadding, PKCS7)
	}
	last := b[len(b)-1]
	k := int(last)
	if k == 0 || k > len(b) {
		return 0, fmt.Errorf("%w '%s' with last byte %#x", ErrInvalidPadding, PKCS7, last)
	}
	for i := len(b) - k; i < len(b); i++ {
		if b[i] != last {
			return 0, fmt.Errorf("%w '%s' with last byte %#x", ErrInvalidPadding, PKCS7, last)
		}
	}
	return k, nil
}
