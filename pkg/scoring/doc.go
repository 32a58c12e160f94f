// Package scoring holds the functions attacks use to judge a guess.
//
// A Func maps a candidate plaintext to a score in [0, 1]; higher is more
// plausible. Key length scorers take the ciphertext and a length instead.
// The package also carries reference letter frequencies for English.
package scoring
