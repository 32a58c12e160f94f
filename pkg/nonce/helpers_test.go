package nonce

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"testing"

	"filippo.io/edwards25519"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

func randScalar(r *rand.Rand, n *big.Int) *big.Int {
	var buf [40]byte
	for i := range buf {
		buf[i] = byte(r.Uint32())
	}
	v := new(big.Int).SetBytes(buf[:])
	v.Mod(v, new(big.Int).Sub(n, big.NewInt(1)))
	return v.Add(v, big.NewInt(1))
}

// affine returns a*k + b mod n.
func affine(k *big.Int, a, b int64, n *big.Int) *big.Int {
	out := new(big.Int).Mul(big.NewInt(a), k)
	out.Add(out, big.NewInt(b))
	return out.Mod(out, n)
}

// nonces returns count nonces, each one related to the previous by (a, b).
func nonces(r *rand.Rand, count int, a, b int64, n *big.Int) []*big.Int {
	out := []*big.Int{randScalar(r, n)}
	for len(out) < count {
		out = append(out, affine(out[len(out)-1], a, b, n))
	}
	return out
}

type ecdsaKey struct {
	d   *big.Int
	pub []byte
}

func newECDSAKey(r *rand.Rand) ecdsaKey {
	d := randScalar(r, Secp256k1Order)
	var b [32]byte
	d.FillBytes(b[:])
	return ecdsaKey{d: d, pub: secp256k1.PrivKeyFromBytes(b[:]).PubKey().SerializeCompressed()}
}

func (k ecdsaKey) sign(nonce *big.Int, msg []byte) *Signature {
	n := Secp256k1Order
	var kb [32]byte
	nonce.FillBytes(kb[:])
	point := secp256k1.PrivKeyFromBytes(kb[:]).PubKey().SerializeCompressed()
	rv := new(big.Int).SetBytes(point[1:])
	rv.Mod(rv, n)

	z := ECDSA{}.HashMessage(msg)
	s := new(big.Int).Mul(rv, k.d)
	s.Add(s, z)
	s.Mul(s, new(big.Int).ModInverse(nonce, n))
	s.Mod(s, n)
	return &Signature{Z: z, R: rv, S: s, Message: msg}
}

func (k ecdsaKey) signAll(ns []*big.Int) []*Signature {
	out := make([]*Signature, len(ns))
	for i, nonce := range ns {
		out[i] = k.sign(nonce, []byte(fmt.Sprintf("message %d", i)))
	}
	return out
}

type eddsaKey struct {
	a   *big.Int
	pub []byte
}

func scalarOf(t *testing.T, v *big.Int) *edwards25519.Scalar {
	sc, err := edwards25519.NewScalar().SetCanonicalBytes(littleEndian(v, 32))
	require.NoError(t, err)
	return sc
}

func newEdDSAKey(t *testing.T, r *rand.Rand) eddsaKey {
	a := randScalar(r, Ed25519Order)
	pub := edwards25519.NewIdentityPoint().ScalarBaseMult(scalarOf(t, a)).Bytes()
	return eddsaKey{a: a, pub: pub}
}

func (k eddsaKey) sign(t *testing.T, nonce *big.Int, msg []byte) *Signature {
	q := Ed25519Order
	enc := edwards25519.NewIdentityPoint().ScalarBaseMult(scalarOf(t, nonce)).Bytes()
	rv := new(big.Int).SetBytes(reversed(enc))

	h := Challenge(rv, k.pub, msg)
	s := new(big.Int).Mul(h, k.a)
	s.Add(s, nonce)
	s.Mod(s, q)
	return &Signature{R: rv, S: s, Message: msg, PublicKey: k.pub}
}

func (k eddsaKey) signAll(t *testing.T, ns []*big.Int) []*Signature {
	out := make([]*Signature, len(ns))
	for i, nonce := range ns {
		out[i] = k.sign(t, nonce, []byte(fmt.Sprintf("message %d", i)))
	}
	return out
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
