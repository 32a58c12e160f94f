// Package oracle builds vulnerable AES services to run the block cipher
// attacks against: an ECB service that appends a secret to its input and a
// CBC service that leaks whether a padding is valid.
package oracle

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// BlockSize is the AES block size.
const BlockSize = aes.BlockSize

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) (bytestring.Bytes, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return bytestring.New(buf), nil
}

// ecbEncrypter is the ECB block mode, missing from crypto/cipher.
type ecbEncrypter struct{ c cipher.Block }

func (m ecbEncrypter) BlockSize() int { return m.c.BlockSize() }

func (m ecbEncrypter) CryptBlocks(dst, src []byte) {
	for n := m.BlockSize(); len(src) > 0; {
		m.c.Encrypt(dst[:n], src[:n])
		dst, src = dst[n:], src[n:]
	}
}

func encrypt(mode cipher.BlockMode, plaintext bytestring.Bytes) (bytestring.Bytes, error) {
	padded, err := plaintext.Pad(mode.BlockSize(), bytestring.PKCS7)
	if err != nil {
		return "", err
	}
	buf := padded.Bytes()
	mode.CryptBlocks(buf, buf)
	return bytestring.New(buf), nil
}

// ECBSuffix encrypts prefix || input || secret with AES-ECB under a fixed key.
type ECBSuffix struct {
	block  cipher.Block
	prefix bytestring.Bytes
	secret bytestring.Bytes
}

// NewECBSuffix returns an ECB service keyed with key.
func NewECBSuffix(key, prefix, secret bytestring.Bytes) (*ECBSuffix, error) {
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &ECBSuffix{block: block, prefix: prefix, secret: secret}, nil
}

// Encrypt is the encryption oracle.
func (o *ECBSuffix) Encrypt(input bytestring.Bytes) (bytestring.Bytes, error) {
	return encrypt(ecbEncrypter{o.block}, bytestring.Join(o.prefix, input, o.secret))
}

// ErrShortCiphertext is returned for ciphertexts without a whole IV block
// and data block.
var ErrShortCiphertext = errors.New("ciphertext too short")

// CBCPadding encrypts with AES-CBC and tells whether a ciphertext decrypts
// to a valid pkcs#7 padding.
type CBCPadding struct {
	block cipher.Block
}

// NewCBCPadding returns a CBC service keyed with key.
func NewCBCPadding(key bytestring.Bytes) (*CBCPadding, error) {
	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &CBCPadding{block: block}, nil
}

// Encrypt pads and encrypts plaintext with the given IV. The IV is not
// part of the output.
func (o *CBCPadding) Encrypt(iv, plaintext bytestring.Bytes) (bytestring.Bytes, error) {
	if iv.Len() != BlockSize {
		return "", fmt.Errorf("iv must have %d bytes, got %d", BlockSize, iv.Len())
	}
	return encrypt(cipher.NewCBCEncrypter(o.block, iv.Bytes()), plaintext)
}

// Decrypt decrypts and unpads ivAndCiphertext, whose first block is the IV.
func (o *CBCPadding) Decrypt(ivAndCiphertext bytestring.Bytes) (bytestring.Bytes, error) {
	n := ivAndCiphertext.Len()
	if n < 2*BlockSize || n%BlockSize != 0 {
		return "", fmt.Errorf("%w: %d bytes", ErrShortCiphertext, n)
	}
	iv := ivAndCiphertext[:BlockSize].Bytes()
	buf := ivAndCiphertext[BlockSize:].Bytes()
	cipher.NewCBCDecrypter(o.block, iv).CryptBlocks(buf, buf)
	return bytestring.New(buf).UnpadBlock(BlockSize, bytestring.PKCS7)
}

// ValidPadding is the padding oracle: it reports whether ivAndCiphertext
// decrypts to a correctly padded plaintext.
func (o *CBCPadding) ValidPadding(ivAndCiphertext bytestring.Bytes) (bool, error) {
	_, err := o.Decrypt(ivAndCiphertext)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bytestring.ErrInvalidPadding):
		return false, nil
	default:
		return false, err
	}
}
