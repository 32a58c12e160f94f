package nonce

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	// ErrNoSolution is returned when the pair of signatures and the relation
	// don't determine a key.
	ErrNoSolution = errors.New("no solution for this relation")
	// ErrInvalidPublicKey is returned for a malformed public key.
	ErrInvalidPublicKey = errors.New("invalid public key")
	// ErrInvalidSignature is returned for a signature missing the values
	// its scheme needs.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Scheme is a signature scheme the recovery works on.
type Scheme interface {
	Name() string
	// Order is the order of the group the nonces and keys live in.
	Order() *big.Int
	// Prepare completes and checks a parsed signature.
	Prepare(sig *Signature) error
	// Recover solves the private key of two signatures whose nonces
	// satisfy k2 = a*k1 + b.
	Recover(sig1, sig2 *Signature, a, b *big.Int) (*big.Int, error)
	// CheckPublicKey validates the encoding of a public key.
	CheckPublicKey(pub []byte) error
	// Verify reports whether priv is the private key of pub.
	Verify(priv *big.Int, pub []byte) (bool, error)
}

// Secp256k1Order is the order of the secp256k1 curve.
var Secp256k1Order, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// Ed25519Order is the order of the prime subgroup of edwards25519.
var Ed25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// two256 bounds the encoded R of an Ed25519 signature.
var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

// ECDSA is ECDSA over secp256k1 with SHA-256 message hashes.
type ECDSA struct{}

func (ECDSA) Name() string { return "ecdsa" }

func (ECDSA) Order() *big.Int { return Secp256k1Order }

// HashMessage hashes a message with SHA-256 and reduces it mod n.
func (ECDSA) HashMessage(message []byte) *big.Int {
	h := sha256.Sum256(message)
	z := new(big.Int).SetBytes(h[:])
	return z.Mod(z, Secp256k1Order)
}

func (e ECDSA) Prepare(sig *Signature) error {
	if sig.R == nil || sig.S == nil {
		return fmt.Errorf("%w: r and s are required", ErrInvalidSignature)
	}
	if err := checkRange("r", sig.R, 1, Secp256k1Order); err != nil {
		return err
	}
	if err := checkRange("s", sig.S, 1, Secp256k1Order); err != nil {
		return err
	}
	if sig.Z == nil {
		if sig.Message == nil {
			return fmt.Errorf("%w: a message or its hash z is required", ErrInvalidSignature)
		}
		sig.Z = e.HashMessage(sig.Message)
	}
	return nil
}

// Recover computes
//
//	priv = (a*s2*z1 - s1*z2 + b*s1*s2) / (r2*s1 - a*r1*s2) mod n
func (ECDSA) Recover(sig1, sig2 *Signature, a, b *big.Int) (*big.Int, error) {
	n := Secp256k1Order

	num := new(big.Int).Mul(a, sig2.S)
	num.Mul(num, sig1.Z)
	num.Sub(num, new(big.Int).Mul(sig1.S, sig2.Z))
	bs := new(big.Int).Mul(b, sig1.S)
	num.Add(num, bs.Mul(bs, sig2.S))
	num.Mod(num, n)

	den := new(big.Int).Mul(sig2.R, sig1.S)
	ar := new(big.Int).Mul(a, sig1.R)
	den.Sub(den, ar.Mul(ar, sig2.S))
	den.Mod(den, n)

	return divMod(num, den, n)
}

func (ECDSA) CheckPublicKey(pub []byte) error {
	if _, err := secp256k1.ParsePubKey(pub); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return nil
}

// Verify accepts compressed and uncompressed public keys.
func (ECDSA) Verify(priv *big.Int, pub []byte) (bool, error) {
	if priv.Sign() <= 0 || priv.Cmp(Secp256k1Order) >= 0 {
		return false, fmt.Errorf("private key out of range")
	}
	want, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	var b [32]byte
	priv.FillBytes(b[:])
	return secp256k1.PrivKeyFromBytes(b[:]).PubKey().IsEqual(want), nil
}

// EdDSA is Ed25519 where the private key is the secret scalar, not the
// seed it is derived from.
type EdDSA struct{}

func (EdDSA) Name() string { return "eddsa" }

func (EdDSA) Order() *big.Int { return Ed25519Order }

func (EdDSA) Prepare(sig *Signature) error {
	if sig.R == nil || sig.S == nil {
		return fmt.Errorf("%w: r and s are required", ErrInvalidSignature)
	}
	if err := checkRange("r", sig.R, 0, two256); err != nil {
		return err
	}
	if err := checkRange("s", sig.S, 0, Ed25519Order); err != nil {
		return err
	}
	if len(sig.PublicKey) != 32 {
		return fmt.Errorf("%w: the signer public key must be 32 bytes, got %d", ErrInvalidSignature, len(sig.PublicKey))
	}
	return nil
}

// Recover solves s = r + H(R||A||M)*priv for both signatures:
//
//	priv = (s2 - a*s1 - b) / (h2 - a*h1) mod q
func (EdDSA) Recover(sig1, sig2 *Signature, a, b *big.Int) (*big.Int, error) {
	q := Ed25519Order
	for _, sig := range []*Signature{sig1, sig2} {
		if err := checkRange("r", sig.R, 0, two256); err != nil {
			return nil, err
		}
	}
	h1 := Challenge(sig1.R, sig1.PublicKey, sig1.Message)
	h2 := Challenge(sig2.R, sig2.PublicKey, sig2.Message)

	num := new(big.Int).Sub(sig2.S, new(big.Int).Mul(a, sig1.S))
	num.Sub(num, b)
	num.Mod(num, q)

	den := new(big.Int).Sub(h2, new(big.Int).Mul(a, h1))
	den.Mod(den, q)

	return divMod(num, den, q)
}

// Challenge computes SHA-512(R || A || M) as a little endian integer mod q.
// r must be in [0, 2^256).
func Challenge(r *big.Int, pub, message []byte) *big.Int {
	h := sha512.New()
	h.Write(littleEndian(r, 32))
	h.Write(pub)
	h.Write(message)
	digest := h.Sum(nil)
	slices.Reverse(digest)
	out := new(big.Int).SetBytes(digest)
	return out.Mod(out, Ed25519Order)
}

func (EdDSA) CheckPublicKey(pub []byte) error {
	if _, err := edwards25519.NewIdentityPoint().SetBytes(pub); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return nil
}

func (EdDSA) Verify(priv *big.Int, pub []byte) (bool, error) {
	if priv.Sign() <= 0 || priv.Cmp(Ed25519Order) >= 0 {
		return false, fmt.Errorf("private key out of range")
	}
	want, err := edwards25519.NewIdentityPoint().SetBytes(pub)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sc, err := edwards25519.NewScalar().SetCanonicalBytes(littleEndian(priv, 32))
	if err != nil {
		return false, err
	}
	got := edwards25519.NewIdentityPoint().ScalarBaseMult(sc)
	return got.Equal(want) == 1, nil
}

// checkRange fails unless lo <= v < hi.
func checkRange(name string, v *big.Int, lo int64, hi *big.Int) error {
	if v == nil || v.Cmp(big.NewInt(lo)) < 0 || v.Cmp(hi) >= 0 {
		return fmt.Errorf("%w: %s is out of range [%d, %s)", ErrInvalidSignature, name, lo, hi.Text(16))
	}
	return nil
}

func divMod(num, den, n *big.Int) (*big.Int, error) {
	if den.Sign() == 0 {
		return nil, fmt.Errorf("%w: the denominator is zero", ErrNoSolution)
	}
	inv := new(big.Int).ModInverse(den, n)
	if inv == nil {
		return nil, fmt.Errorf("%w: the denominator has no inverse", ErrNoSolution)
	}
	priv := inv.Mul(inv, num)
	return priv.Mod(priv, n), nil
}

func littleEndian(v *big.Int, size int) []byte {
	out := make([]byte, size)
	v.FillBytes(out)
	slices.Reverse(out)
	return out
}

// SchemeByName returns the scheme named "ecdsa" or "eddsa".
func SchemeByName(name string) (Scheme, error) {
	switch name {
	case "ecdsa":
		return ECDSA{}, nil
	case "eddsa":
		return EdDSA{}, nil
	}
	return nil, fmt.Errorf("unknown scheme %q, use ecdsa or eddsa", name)
}
