package metrics

import (
	"maps"

	"github.com/jamesainslie/go-doceval/elements"
)

// NoDepth is the depth recorded for elements without category_depth metadata.
const NoDepth = -1

// DefaultCategoryDepthWeight is the credit given to an element whose type
// matches but whose depth does not.
const DefaultCategoryDepthWeight = 0.5

// TypeDepth identifies an element category at a hierarchy depth.
type TypeDepth struct {
	Type  string
	Depth int
}

// Frequency counts elements per (type, depth).
type Frequency map[TypeDepth]int

// ElementTypeFrequency counts els by type and category depth.
func ElementTypeFrequency(els []elements.Element) Frequency {
	freq := make(Frequency)
	for _, el := range els {
		depth := NoDepth
		if el.Metadata.CategoryDepth != nil {
			depth = *el.Metadata.CategoryDepth
		}
		freq[TypeDepth{Type: el.Type, Depth: depth}]++
	}
	return freq
}

// CalculateElementTypePercentMatch compares two frequency tables.
// Elements matching on type and depth count fully. Leftovers are then matched on
// type alone and count depthWeight each. The result is normalised by the source
// element count and bounded to [0, 1]; it is 0 when either side is empty.
func CalculateElementTypePercentMatch(output, source Frequency, depthWeight float64) float64 {
	if len(output) == 0 || len(source) == 0 {
		return 0
	}

	out := maps.Clone(output)
	src := maps.Clone(source)

	var exact, partial, total int
	unmatchedOut := make(map[string]int)
	for k, n := range out {
		if m, ok := src[k]; ok {
			c := min(n, m)
			exact += c
			total += c
			out[k] -= c
			src[k] -= c
		}
		unmatchedOut[k.Type] += out[k]
	}

	unmatchedSrc := make(map[string]int)
	for k, n := range src {
		unmatchedSrc[k.Type] += n
	}

	for typ, n := range unmatchedSrc {
		total += n
		if m, ok := unmatchedOut[typ]; ok {
			partial += min(m, n)
		}
	}

	if total == 0 {
		return 0
	}
	matched := float64(exact) + float64(partial)*depthWeight
	return clamp(matched/float64(total), 0, 1)
}
