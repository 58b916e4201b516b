package provenance

import (
	"strings"
)

// Verify reports whether a context sentence actually occurs in the
// source text. The first pass is a case-insensitive substring check;
// if that fails, both sides are whitespace-normalized and compared
// again so line breaks and double spaces in extracted text do not
// cause false negatives.
func Verify(sourceText, sentence string) bool {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return false
	}

	haystack := strings.ToLower(sourceText)
	needle := strings.ToLower(sentence)
	if strings.Contains(haystack, needle) {
		return true
	}

	return strings.Contains(normalizeWhitespace(haystack), normalizeWhitespace(needle))
}

// VerifyAll checks every sentence against the source and returns true
// only when each one is grounded.
func VerifyAll(sourceText string, sentences []string) bool {
	if len(sentences) == 0 {
		return false
	}
	for _, s := range sentences {
		if !Verify(sourceText, s) {
			return false
		}
	}
	return true
}

// normalizeWhitespace collapses all runs of whitespace to single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
