package scoring

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
)

// Func scores a candidate plaintext with a value in [0, 1].
type Func func(m bytestring.Bytes) float64

// AllASCIIPrintable scores 1 when every byte of m is a printable ASCII
// character or whitespace (\t \n \v \f \r), 0 otherwise.
func AllASCIIPrintable(m bytestring.Bytes) float64 {
	for i := 0; i < m.Len(); i++ {
		b := m.At(i)
		if !(b >= 32 && b <= 126) && !(b >= 9 && b <= 13) {
			return 0
		}
	}
	return 1
}

// InAlphabet returns a Func that scores 1 when every byte of m belongs to
// alphabet.
func InAlphabet(alphabet bytestring.Bytes) Func {
	var allowed [256]bool
	for i := 0; i < alphabet.Len(); i++ {
		allowed[alphabet.At(i)] = true
	}
	return func(m bytestring.Bytes) float64 {
		for i := 0; i < m.Len(); i++ {
			if !allowed[m.At(i)] {
				return 0
			}
		}
		return 1
	}
}

// HasPrefix returns a Func that scores 1 when m starts with prefix, like a
// file magic number ("BM" for bitmaps, "\x89PNG" for PNG).
func HasPrefix(prefix bytestring.Bytes) Func {
	return func(m bytestring.Bytes) float64 {
		if strings.HasPrefix(string(m), string(prefix)) {
			return 1
		}
		return 0
	}
}

// Language returns a Func that scores m with the confidence the detector
// has that m is written in lang.
func Language(detector lingua.LanguageDetector, lang lingua.Language) Func {
	return func(m bytestring.Bytes) float64 {
		return detector.ComputeLanguageConfidence(string(m), lang)
	}
}

// NewEnglishDetector builds a detector that tells English apart from a few
// other languages written with the latin alphabet.
func NewEnglishDetector() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.French, lingua.German, lingua.Spanish, lingua.Italian).
		Build()
}

// Product returns a Func that multiplies the scores of fs. It stops at the
// first zero, so cheap filters should go first.
func Product(fs ...Func) Func {
	return func(m bytestring.Bytes) float64 {
		score := 1.0
		for _, f := range fs {
			score *= f(m)
			if score == 0 {
				return 0
			}
		}
		return score
	}
}

// NgramEntropy returns the entropy of the n-grams of m, in nats. It is not a
// Func: the result is not bounded by 1. Random data gets higher values.
func NgramEntropy(m bytestring.Bytes, n int) (float64, error) {
	g, err := m.Ngrams(n)
	if err != nil {
		return 0, err
	}
	return g.Entropy(), nil
}
