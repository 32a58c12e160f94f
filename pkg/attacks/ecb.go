package attacks

import (
	"fmt"

	"github.com/mahdiidarabi/cryptonita/internal/logx"
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// EncryptionOracle encrypts a chosen plaintext with a key unknown to the
// attacker, possibly wrapping it with unknown bytes.
type EncryptionOracle func(plaintext bytestring.Bytes) (bytestring.Bytes, error)

const filler = 'A'

// DecryptECBTail recovers, byte at a time, the unknown secret an ECB oracle
// appends to the attacker's input.
//
// alignment is the number of filler bytes that complete the oracle's own
// prefix to a whole block (see FindECBAlignment). Each round submits
//
//	| align | AAAAAAb | AAAAAA? ...
//
// where the second block is a copy of the block holding the next unknown
// byte '?' except for the guess b. When both blocks encrypt to the same
// ciphertext block the guess is right. The known bytes then slide into the
// test block and the target filler shrinks by one.
//
// The attack stops after limit bytes (0 means no limit) or when a whole
// round finds no match. In the latter case the last recovered byte is the
// 0x01 pkcs#7 pad byte of the oracle and it is removed.
//
// Accidental block collisions are not detected and lead to wrong bytes.
func DecryptECBTail(alignment, blockSize int, oracle EncryptionOracle, limit int) (bytestring.Bytes, error) {
	if blockSize <= 0 {
		return "", fmt.Errorf("block size must be positive, got %d", blockSize)
	}
	if alignment < 0 || alignment >= blockSize {
		return "", fmt.Errorf("alignment must be in [0, %d), got %d", blockSize, alignment)
	}

	alignBlock := bytestring.Repeat(filler, alignment)
	testBlock := bytestring.Repeat(filler, blockSize-1).Mutable()
	targetLen := blockSize - 1
	distance := 0

	recovered := bytestring.NewBuffer(0)
	guess := bytestring.NewBuffer(1)
	for limit <= 0 || recovered.Len() < limit {
		found := false
		for b := 0; b < 256; b++ {
			guess.Set(0, byte(b))
			input := bytestring.Join(
				alignBlock,
				testBlock.Freeze(),
				guess.Freeze(),
				bytestring.Repeat(filler, targetLen),
			)
			c, err := oracle(input)
			if err != nil {
				return "", fmt.Errorf("encryption oracle failed at byte %d: %w", recovered.Len(), err)
			}
			if !c.Blocks(blockSize).HasDuplicates(distance) {
				continue
			}

			found = true
			recovered.Append(byte(b))
			testBlock.ShiftLeft(guess.Freeze())
			if targetLen == 0 {
				targetLen = blockSize - 1
				distance++
			} else {
				targetLen--
			}
			logx.L().Debug("ecb byte recovered", "index", recovered.Len()-1, "byte", b)
			break
		}
		if !found {
			out := recovered.Freeze()
			if n := out.Len(); n > 0 && out.At(n-1) == 0x01 {
				out = out[:n-1]
			}
			return out, nil
		}
	}
	return recovered.Freeze(), nil
}

// DetectBlockSize feeds the oracle longer and longer inputs until the
// ciphertext grows; the size of the jump is the block size.
func DetectBlockSize(oracle EncryptionOracle) (int, error) {
	c, err := oracle("")
	if err != nil {
		return 0, err
	}
	base := c.Len()
	for n := 1; n <= 256; n++ {
		c, err := oracle(bytestring.Repeat(filler, n))
		if err != nil {
			return 0, err
		}
		if c.Len() > base {
			return c.Len() - base, nil
		}
	}
	return 0, fmt.Errorf("%w: the ciphertext never grew, it does not look like a block cipher", ErrInsufficientData)
}

// FindECBAlignment returns how many filler bytes complete the oracle's
// prefix to a whole block: the smallest count for which two following
// blocks of filler encrypt to two equal ciphertext blocks.
//
// A prefix ending with filler bytes makes the answer too small.
func FindECBAlignment(blockSize int, oracle EncryptionOracle) (int, error) {
	two := bytestring.Repeat(filler, 2*blockSize)
	alignment, ok, err := Search(0, blockSize, 0, func(a int) (bool, error) {
		c, err := oracle(bytestring.Repeat(filler, a) + two)
		if err != nil {
			return false, err
		}
		return c.Blocks(blockSize).HasDuplicates(0), nil
	})
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no alignment produced repeated blocks, the oracle does not look like ECB")
	}
	return alignment, nil
}

// IsECB reports whether ciphertext has two equal blocks anywhere, the mark
// of ECB encrypting a repetitive plaintext.
func IsECB(ciphertext bytestring.Bytes, blockSize int) bool {
	blocks := ciphertext.Blocks(blockSize)
	return len(blocks.Freq()) < blocks.Len()
}
