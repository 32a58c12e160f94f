// Package bytestring provides the byte-sequence algebra shared by every attack
// in cryptonita.
//
// Bytes is an immutable sequence of bytes. It is backed by a Go string, so it
// can be compared with ==, used as a map key and sliced without copying while
// still never changing after construction. Buffer is its mutable counterpart,
// meant to be used as a working buffer inside an attack and frozen into Bytes
// when the attack returns.
//
// # Views
//
// Three lazy views can be derived from a Bytes value:
//
//	s := bytestring.Bytes("ABCDEF")
//
//	grams, _ := s.Ngrams(3)   // ABC BCD CDE DEF (overlapping)
//	blocks := s.Blocks(4)     // ABCD EF         (non-overlapping, last may be short)
//	key := s.Keystream()      // ABCDEFABCDEF... (infinite)
//
// XOR between two finite sequences requires equal lengths. XOR against a
// Keystream truncates to the finite operand:
//
//	plain := bytestring.Bytes("Burning 'em, if you ain't quick and nimble")
//	cipher := plain.XorStream(bytestring.Bytes("ICE").Keystream())
//
// # Statistics
//
// Frequencies, most common items, entropy and duplicate detection are
// generic over Seq, so they work the same on Bytes (items are bytes) and on
// the Ngrams and Blocks views (items are Bytes).
package bytestring
