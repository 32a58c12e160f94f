package scoring

import (
	"fmt"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/metrics"
)

// KeyLengthFunc scores how likely length is the length of the repeating
// key that produced ciphertext.
type KeyLengthFunc func(ciphertext bytestring.Bytes, length int) (float64, error)

// KeyLengthByHamming scores a key length for a repeating xor cipher using
// the hamming distance between consecutive blocks of length bytes.
//
// Bytes encrypted with the same key byte keep the (low) hamming distance of
// the plaintext, while different key bytes push it towards 4 bits per byte.
// The score is 1 - max_distance / (8*length), the maximum taken over every
// pair of consecutive full blocks.
func KeyLengthByHamming(ciphertext bytestring.Bytes, length int) (float64, error) {
	if length <= 0 {
		return 0, fmt.Errorf("key length must be positive, got %d", length)
	}
	if ciphertext.Len() < 2*length {
		return 0, fmt.Errorf("%w: the ciphertext is too short to guess the key's length and it is impossible to see if a key of %d bytes could be possible",
			bytestring.ErrTooShort, length)
	}

	blocks := ciphertext.Blocks(length)
	maxDistance := 0
	for i := 0; i+1 < blocks.Len(); i++ {
		a, b := blocks.At(i), blocks.At(i+1)
		if b.Len() < length {
			break
		}
		d, err := a.HammingDistance(b)
		if err != nil {
			return 0, err
		}
		maxDistance = max(maxDistance, d)
	}
	return 1 - float64(maxDistance)/float64(length*8), nil
}

// KeyLengthByIC scores a key length with the index of coincidence of the
// ciphertext bytes that sit length bytes apart (positions 0, l, 2l, ...),
// all of them encrypted with the same key byte.
func KeyLengthByIC(ciphertext bytestring.Bytes, length int) (float64, error) {
	if length <= 0 {
		return 0, fmt.Errorf("key length must be positive, got %d", length)
	}
	column := make([]byte, 0, ciphertext.Len()/length+1)
	for i := 0; i < ciphertext.Len(); i += length {
		column = append(column, ciphertext.At(i))
	}
	return metrics.IndexOfCoincidence[byte](bytestring.New(column)), nil
}
