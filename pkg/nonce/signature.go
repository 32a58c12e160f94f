package nonce

import "math/big"

// Signature is a signature of either scheme.
//
// ECDSA uses Z, R and S; Z is computed from Message when missing. EdDSA uses
// R (the encoded nonce point read as a little endian integer), S, Message
// and the signer's PublicKey.
type Signature struct {
	Z         *big.Int
	R         *big.Int
	S         *big.Int
	Message   []byte
	PublicKey []byte
}

// Relation is the relation between the nonces of two signatures:
// k2 = A*k1 + B.
type Relation struct {
	A *big.Int
	B *big.Int
}

// Result is the outcome of a successful recovery.
type Result struct {
	PrivateKey *big.Int
	Relation   Relation
	// Pair holds the indexes of the signatures the key was recovered from.
	Pair     [2]int
	Verified bool
	Pattern  string
}
