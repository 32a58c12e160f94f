package scoring

import (
	"github.com/mahdiidarabi/cryptonita/pkg/bytestring"
	"github.com/mahdiidarabi/cryptonita/pkg/candidate"
)

// Case sensitive single letter counts of the NYT corpus, from Jones and
// Mewhort, "Case-sensitive letter and bigram frequency counts from
// large-scale English corpora".
var letterCounts = [26]struct{ upper, lower float64 }{
	{280937, 5263779}, // A
	{169474, 866156},
	{229363, 1960412},
	{129632, 2369820},
	{138443, 7741842}, // E
	{100751, 1296925},
	{93212, 1206747},
	{123632, 2955858},
	{223312, 4527332},
	{78706, 65856}, // J
	{46580, 460788},
	{106984, 2553152},
	{259474, 1467376},
	{205409, 4535545},
	{105700, 4729266}, // O
	{144239, 1255579},
	{11659, 54221},
	{146448, 4137949},
	{304971, 4186210},
	{325462, 5507692}, // T
	{57488, 1613323},
	{31053, 653370},
	{107195, 1015656},
	{7578, 123577},
	{94297, 1062040},
	{5610, 66423}, // Z
}

// English word counts (in millions) by word length 1..23, from
// http://norvig.com/mayzner.html
var wordLengthCounts = [...]float64{
	22301.22, 131293.85, 152568.38, 109988.33, 79589.32, 62391.21, 59052.66,
	44207.29, 33006.93, 22883.84, 13098.06, 7124.15, 3850.58, 1653.08,
	565.24, 151.22, 72.81, 28.62, 8.51, 6.35, 0.13, 0.81, 0.32,
}

// SpaceFreq is the expected frequency of the space character in English
// text: one space per word over all the letters and spaces.
var SpaceFreq = func() float64 {
	words, letters := 0.0, 0.0
	for i, c := range wordLengthCounts {
		words += c
		letters += float64(i+1) * c
	}
	return words / (words + letters)
}()

// Case selects which letters a frequency table covers.
type Case int

const (
	// Lower covers a..z.
	Lower Case = iota
	// Upper covers A..Z.
	Upper
	// Mixed covers both cases, normalized together.
	Mixed
)

// EnglishLetterFreq returns the relative frequency of each English letter of
// the given case.
func EnglishLetterFreq(c Case) *candidate.Set[bytestring.Bytes] {
	total := 0.0
	for _, lc := range letterCounts {
		if c != Lower {
			total += lc.upper
		}
		if c != Upper {
			total += lc.lower
		}
	}

	s := candidate.Empty[bytestring.Bytes]()
	for i, lc := range letterCounts {
		if c != Lower {
			s.Set(bytestring.Of(byte('A'+i)), lc.upper/total)
		}
		if c != Upper {
			s.Set(bytestring.Of(byte('a'+i)), lc.lower/total)
		}
	}
	return s
}

// EtaoinShrdlu returns the n most frequent lowercase English letters with
// their relative frequency. With includeSpace the space character is added
// as an extra entry and the letter frequencies are scaled to make room for it.
func EtaoinShrdlu(includeSpace bool, n int) *candidate.Set[bytestring.Bytes] {
	s := EnglishLetterFreq(Lower)
	if includeSpace {
		s.Scale(1 - SpaceFreq)
		s.Set(" ", SpaceFreq)
		n++
	}
	s.CutOffTop(n)
	return s
}

// TsamcinBrped returns the n most frequent uppercase English letters. Mixed
// case English texts use uppercase mostly at the start of a sentence, hence
// the unusual order. The space character is not included.
func TsamcinBrped(n int) *candidate.Set[bytestring.Bytes] {
	s := EnglishLetterFreq(Upper)
	s.CutOffTop(n)
	return s
}

// englishWeights maps every byte to its expected frequency in English text,
// case folded, relative to the most frequent symbol (the space).
var englishWeights = func() (w [256]float64) {
	s := EtaoinShrdlu(true, 26)
	for i := range 26 {
		lower := s.Get(bytestring.Of(byte('a' + i)))
		w['a'+i] = lower / SpaceFreq
		w['A'+i] = lower / SpaceFreq
	}
	w[' '] = 1
	return w
}()

// EnglishLetters scores m by how much its bytes look like English letters:
// the mean of the relative frequency of each byte, 0 for any non printable
// byte. It works on short or scattered samples, like the bytes of a
// ciphertext encrypted with the same key byte, where language detection
// does not.
func EnglishLetters(m bytestring.Bytes) float64 {
	if m.Len() == 0 || AllASCIIPrintable(m) == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < m.Len(); i++ {
		sum += englishWeights[m.At(i)]
	}
	return sum / float64(m.Len())
}
