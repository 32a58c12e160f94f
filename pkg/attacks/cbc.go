package attacks

import (
	"fmt"
	"slices"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// PaddingOracle reports whether a CBC ciphertext, whose first block acts as
// the IV, decrypts to a valid pkcs#7 padding.
type PaddingOracle func(ciphertext bytestring.Bytes) (bool, error)

// DecryptCBCPaddingAttack decrypts a CBC ciphertext using only a padding
// oracle. If iv is not empty it is prepended to ciphertext; otherwise the
// first block can't be decrypted and acts as the IV.
//
// The blocks are decrypted from the last one backwards: the block before
// the target is forged byte by byte, from the end, until the oracle accepts
// the padding; the accepted byte reveals the intermediate value of the
// target at that position. The plaintext is returned with its padding.
//
// Oracle errors abort the attack; they are not retried.
func DecryptCBCPaddingAttack(ciphertext bytestring.Bytes, blockSize int, oracle PaddingOracle, iv bytestring.Bytes) (bytestring.Bytes, error) {
	if blockSize <= 0 || blockSize > 255 {
		return "", fmt.Errorf("block size must be in [1, 255], got %d", blockSize)
	}
	ciphertext = iv + ciphertext
	if ciphertext.Len()%blockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext has %d bytes, not a multiple of the block size %d",
			bytestring.ErrLengthMismatch, ciphertext.Len(), blockSize)
	}

	blocks := ciphertext.Blocks(blockSize).Slice()
	var plain []bytestring.Bytes
	for len(blocks) > 1 {
		p, err := decryptLastBlock(blocks, blockSize, oracle)
		if err != nil {
			return "", err
		}
		logx.L().Debug("cbc block decrypted", "block", len(blocks)-1)
		plain = append(plain, p)
		blocks = blocks[:len(blocks)-1]
	}
	slices.Reverse(plain)
	return bytestring.Join(plain...), nil
}

// decryptLastBlock recovers the plaintext of the last block, forging the
// one before it.
func decryptLastBlock(blocks []bytestring.Bytes, bs int, oracle PaddingOracle) (bytestring.Bytes, error) {
	head := bytestring.Join(blocks[:len(blocks)-2]...)
	prev := blocks[len(blocks)-2]
	last := blocks[len(blocks)-1]

	// intermediate values; a position where only the original byte is
	// accepted keeps this default
	x := bytestring.NewBuffer(bs)
	for i := 0; i < bs; i++ {
		x.Set(i, byte(bs-i)^prev[i])
	}

	query := func(forged *bytestring.Buffer) (bool, error) {
		ok, err := oracle(head + forged.Freeze() + last)
		if err != nil {
			return false, fmt.Errorf("padding oracle failed: %w", err)
		}
		return ok, nil
	}

	forged := prev.Mutable()
	for i := bs - 1; i >= 0; i-- {
		padn := byte(bs - i)
		for j := 0; j < bs; j++ {
			switch {
			case j < i:
				forged.Set(j, prev[j])
			case j > i:
				forged.Set(j, padn^x.At(j))
			}
		}

		for n := 0; n < 256; n++ {
			if byte(n) == prev[i] {
				continue
			}
			forged.Set(i, byte(n))
			ok, err := query(forged)
			if err != nil {
				return "", err
			}
			if !ok {
				continue
			}
			if i == bs-1 && i > 0 {
				// a pad of 0x02 0x02 (or longer) is also accepted; touching
				// the byte before tells it apart from a 0x01 pad
				forged.Set(i-1, prev[i-1]^0xff)
				ok, err = query(forged)
				forged.Set(i-1, prev[i-1])
				if err != nil {
					return "", err
				}
				if !ok {
					continue
				}
			}
			x.Set(i, padn^byte(n))
			break
		}
	}

	if err := x.Xor(prev); err != nil {
		return "", err
	}
	return x.Freeze(), nil
}
