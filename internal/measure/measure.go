package measure

import (
	"strings"
	"unicode/utf8"

	"ccwc/internal/types"
)

// Result maps each kind of the effective request to its count.
type Result struct {
	kinds  types.Set
	counts [types.Chars + 1]int
}

// Kinds returns the measured kinds in display order.
func (r Result) Kinds() []types.Kind {
	return r.kinds.Kinds()
}

// Set returns the kinds present in the result.
func (r Result) Set() types.Set {
	return r.kinds
}

// Get returns the count for k and whether k was measured.
func (r Result) Get(k types.Kind) (int, bool) {
	if !r.kinds.Has(k) {
		return 0, false
	}

	return r.counts[k], true
}

// Effective applies the default substitution rule.
func Effective(requested types.Set) types.Set {
	return EffectiveOr(requested, types.DefaultSet)
}

// EffectiveOr returns requested, or fallback when requested is empty.
func EffectiveOr(requested, fallback types.Set) types.Set {
	if requested.Empty() {
		return fallback
	}

	return requested
}

// Measure computes the requested measurements of content.
func Measure(content string, requested types.Set) Result {
	return MeasureWith(content, requested, types.DefaultSet)
}

// MeasureWith is Measure with a caller-supplied default bundle.
func MeasureWith(content string, requested, fallback types.Set) Result {
	effective := EffectiveOr(requested, fallback)
	result := Result{kinds: effective}

	for _, k := range effective.Kinds() {
		result.counts[k] = count(content, k)
	}

	return result
}

func count(content string, k types.Kind) int {
	switch k {
	case types.Lines:
		return CountLines(content)
	case types.Words:
		return CountWords(content)
	case types.Bytes:
		return CountBytes(content)
	case types.Chars:
		return CountChars(content)
	default:
		return 0
	}
}

// CountBytes returns the UTF-8 encoded length of content.
func CountBytes(content string) int {
	return len(content)
}

// CountChars returns the number of Unicode scalar values in content.
func CountChars(content string) int {
	return utf8.RuneCountInString(content)
}

// CountWords returns the number of whitespace-separated words.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// CountLines counts line breaks plus a final unterminated segment, if any.
func CountLines(content string) int {
	if content == "" {
		return 0
	}

	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}

	return n
}

// NewResult builds a result from explicit counts. Negative counts are clamped to zero.
func NewResult(counts map[types.Kind]int) Result {
	var result Result

	for k, n := range counts {
		if k > types.Chars {
			continue
		}

		result.kinds = result.kinds.With(k)
		result.counts[k] = max(n, 0)
	}

	return result
}
