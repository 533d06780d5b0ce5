// Package metrics scores extraction output against gold standards: text
// similarity, element-type frequency and table structure.
package metrics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Weights are the edit-distance costs. Insertion is a character present in the
// gold text but missing from the output.
type Weights struct {
	Insertion    int
	Deletion     int
	Substitution int
}

// DefaultWeights penalises missing text twice as much as extra or wrong text.
func DefaultWeights() Weights {
	return Weights{
		Insertion:    2,
		Deletion:     1,
		Substitution: 1,
	}
}

func (w Weights) options() levenshtein.Options {
	return levenshtein.Options{
		InsCost: w.Insertion,
		DelCost: w.Deletion,
		SubCost: w.Substitution,
		Matches: levenshtein.IdenticalRunes,
	}
}

// CalculateEditDistance returns the weighted Levenshtein distance turning the
// output into the source, after whitespace standardization.
func CalculateEditDistance(output, source string, w Weights) int {
	out := []rune(PrepareString(output, true))
	src := []rune(PrepareString(source, true))
	return levenshtein.DistanceForStrings(out, src, w.options())
}

// CalculateAccuracy returns 1 minus the edit distance normalised by the source
// length, bounded to [0, 1]. Identical texts score 1.
func CalculateAccuracy(output, source string, w Weights) float64 {
	srcLen := max(utf8.RuneCountInString(PrepareString(source, true)), 1)
	dist := CalculateEditDistance(output, source, w)
	return 1 - clamp(float64(dist)/float64(srcLen), 0, 1)
}

// CalculatePercentMissingText returns the fraction of source words absent from
// the output, counting multiplicity. Rounded to 3 places and capped at 1.
func CalculatePercentMissingText(output, source string) float64 {
	outBag := BagOfWords(PrepareString(output, true))
	srcBag := BagOfWords(PrepareString(source, true))
	if len(srcBag) == 0 {
		return 0
	}

	total := lo.Sum(lo.Values(srcBag))
	missing := 0
	for word, n := range srcBag {
		missing += max(n-outBag[word], 0)
	}

	return min(Round(float64(missing)/float64(total), 3), 1)
}

// BagOfWords counts the words of text. Text is lowercased and stripped of
// sentence punctuation other than hyphens and apostrophes. Single-character
// tokens count only when they stand alone; runs of them (letter-spaced text)
// are dropped.
func BagOfWords(text string) map[string]int {
	bow := make(map[string]int)
	words := strings.Fields(cleanBullets(removePunctuation(strings.ToLower(text), "-'")))

	for i := 0; i < len(words); {
		word := words[i]
		if utf8.RuneCountInString(word) > 1 {
			bow[word]++
			i++
			continue
		}

		// a run of single-rune tokens is letter-spaced text; only a lone
		// letter or digit counts as a word
		r, _ := utf8.DecodeRuneInString(word)
		j := i + 1
		for j < len(words) && utf8.RuneCountInString(words[j]) == 1 {
			j++
		}
		if j-i == 1 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			bow[word]++
		}
		i = j
	}

	return bow
}

// Similarity returns a [0, 1] ratio of how alike a and b are, based on the
// Levenshtein distance with substitutions costing 2. Two empty strings are
// identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	sum := len(ra) + len(rb)
	if sum == 0 {
		return 1
	}
	dist := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return clamp(float64(sum-dist)/float64(sum), 0, 1)
}
