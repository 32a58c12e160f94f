// Package attacks implements classic attacks against weak uses of
// cryptography.
//
// Xor ciphers:
//   - BruteForce tries every key of a key space and scores the plaintexts.
//   - FreqAttack proposes keys from the most frequent ciphertext bytes.
//   - GuessKeyLength ranks the plausible lengths of a repeating key.
//   - BreakSharedKeystream attacks many ciphertexts under one keystream.
//   - CorrectKey proposes fixes to an almost right key from its plaintexts.
//
// Block ciphers, given an oracle:
//   - DecryptECBTail recovers the secret an ECB oracle appends to its input.
//   - DecryptCBCPaddingAttack decrypts CBC ciphertexts with a padding oracle.
//
// Pseudo random generators:
//   - CloneMT19937 rebuilds a Mersenne Twister from 624 of its outputs.
//
// Every attack that can't certify a single answer returns a weighted
// candidate.Set instead.
package attacks
