// Package keyed builds naive keyed hashes (MACs) by concatenating a secret
// key with the message: H(k || m) and H(m || k).
//
// Both constructions are weak. The prefix one is open to length extension
// attacks and the suffix one inherits any collision of the hash.
package keyed

import (
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"sort"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/md4"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// ErrUnknownHash is returned by ByName for an unregistered hash name.
var ErrUnknownHash = errors.New("unknown hash")

// Hash constructs a fresh hash.Hash.
type Hash func() hash.Hash

// The supported hashes.
var (
	MD4    Hash = md4.New
	SHA1   Hash = sha1.New
	SHA256 Hash = sha256.New
	BLAKE3 Hash = func() hash.Hash { return blake3.New() }
)

var byName = map[string]Hash{
	"md4":    MD4,
	"sha1":   SHA1,
	"sha256": SHA256,
	"blake3": BLAKE3,
}

// ByName returns the hash registered as name: md4, sha1, sha256 or blake3.
func ByName(name string) (Hash, error) {
	h, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q, available: %v", ErrUnknownHash, name, Names())
	}
	return h, nil
}

// Names returns the registered hash names, sorted.
func Names() []string {
	out := make([]string, 0, len(byName))
	for n := range byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Prefix computes H(key || msg).
func Prefix(h Hash, key, msg bytestring.Bytes) bytestring.Bytes {
	return sum(h, key, msg)
}

// Suffix computes H(msg || key).
func Suffix(h Hash, key, msg bytestring.Bytes) bytestring.Bytes {
	return sum(h, msg, key)
}

func sum(h Hash, parts ...bytestring.Bytes) bytestring.Bytes {
	d := h()
	for _, p := range parts {
		d.Write([]byte(p))
	}
	return bytestring.Bytes(d.Sum(nil))
}

// MAC is a keyed hash bound to a secret key.
type MAC struct {
	h      Hash
	key    bytestring.Bytes
	suffix bool
}

// NewPrefixMAC returns a MAC computing H(key || msg).
func NewPrefixMAC(h Hash, key bytestring.Bytes) *MAC {
	return &MAC{h: h, key: key}
}

// NewSuffixMAC returns a MAC computing H(msg || key).
func NewSuffixMAC(h Hash, key bytestring.Bytes) *MAC {
	return &MAC{h: h, key: key, suffix: true}
}

// Sign returns the tag of msg.
func (m *MAC) Sign(msg bytestring.Bytes) bytestring.Bytes {
	if m.suffix {
		return Suffix(m.h, m.key, msg)
	}
	return Prefix(m.h, m.key, msg)
}

// Verify reports whether tag is the tag of msg.
func (m *MAC) Verify(msg, tag bytestring.Bytes) bool {
	return m.Sign(msg) == tag
}
