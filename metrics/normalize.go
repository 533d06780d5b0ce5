package metrics

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// bullets are stripped from the start of text before counting words.
const bullets = "•●○◦▪▫■□‣⁃◘◙·➢➤"

// PrepareString puts text in canonical form before comparison.
// - Applies Unicode NFC normalization
// - Optionally collapses whitespace runs to one space and trims both ends
func PrepareString(text string, standardizeWhitespace bool) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	if !standardizeWhitespace {
		return text
	}

	var builder strings.Builder
	needSpace := false

	for _, r := range text {
		if unicode.IsSpace(r) {
			// Only separate words once something has been written
			if builder.Len() > 0 {
				needSpace = true
			}
			continue
		}
		if needSpace {
			builder.WriteByte(' ')
			needSpace = false
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// removePunctuation drops punctuation runes except those listed in keep.
func removePunctuation(text, keep string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) && !strings.ContainsRune(keep, r) {
			return -1
		}
		return r
	}, text)
}

func cleanBullets(text string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(text), bullets))
}

// Round rounds v to the given number of decimal places. NaN passes through.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, floor, ceil float64) float64 {
	return math.Min(math.Max(v, floor), ceil)
}
